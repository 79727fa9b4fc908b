package db

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"database/sql"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed schema_postgres.sql schema_sqlite.sql
var schemaFS embed.FS

// Dialect identifies the SQL flavor of the underlying store.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB wraps *sql.DB with the dialect it was opened with, so repositories can
// rebind placeholders for SQLite.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the store named by databaseURL and applies the schema
// idempotently. A "postgres://" or "postgresql://" DSN selects Postgres;
// anything else is treated as a SQLite file path (optionally prefixed with
// "sqlite://").
func Open(databaseURL string, maxOpen, maxIdle int) (*DB, error) {
	var (
		handle  *sql.DB
		dialect Dialect
		err     error
	)

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialect = Postgres
		handle, err = sql.Open("postgres", databaseURL)
	} else {
		dialect = SQLite
		handle, err = sql.Open("sqlite", sqliteDSN(databaseURL))
	}
	if err != nil {
		return nil, err
	}

	if maxOpen > 0 {
		handle.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		handle.SetMaxIdleConns(maxIdle)
	}

	if err := handle.Ping(); err != nil {
		_ = handle.Close()
		return nil, err
	}

	d := &DB{DB: handle, Dialect: dialect}
	if err := d.applySchema(context.Background()); err != nil {
		_ = handle.Close()
		return nil, err
	}

	return d, nil
}

// sqliteDSN strips an optional sqlite:// prefix and applies connection
// pragmas: foreign keys on, and a busy timeout so a second writer waits for
// the lock instead of failing immediately with SQLITE_BUSY.
func sqliteDSN(path string) string {
	path = strings.TrimPrefix(path, "sqlite://")
	if strings.Contains(path, "_pragma") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (d *DB) applySchema(ctx context.Context) error {
	name := "schema_postgres.sql"
	if d.Dialect == SQLite {
		name = "schema_sqlite.sql"
	}

	schemaSQL, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := d.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Rebind rewrites $N placeholders to ? for SQLite. Queries are written in
// Postgres form with placeholders in appearance order, so positional binding
// stays correct after the rewrite.
func (d *DB) Rebind(query string) string {
	if d.Dialect != SQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			i++
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
