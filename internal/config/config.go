package config

import (
	"os"
	"strconv"
)

// DefaultSecretKey is the insecure fallback session-signing secret.
// Startup refuses to run with it when Env is "prod".
const DefaultSecretKey = "SuperSecretKey"

type Config struct {
	Port string

	// DatabaseURL is either a postgres DSN ("postgres://...") or a SQLite
	// file path (default "todo.db").
	DatabaseURL string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// SecretKey signs session cookies.
	SecretKey string

	// Env is "dev" (default) or "prod". When "prod", SECRET_KEY must be set and not the default.
	Env string

	// SessionTTLHours is the session token lifetime in hours (default 24).
	SessionTTLHours int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the server listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// PurgeCompletedCron is a cron expression for the completed-task purge
	// job (e.g. "0 3 * * *"). Empty disables the job.
	PurgeCompletedCron string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", "todo.db"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SecretKey: getEnv("SECRET_KEY", DefaultSecretKey),
		Env:       getEnv("ENV", "dev"),

		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		PurgeCompletedCron: getEnv("PURGE_COMPLETED_CRON", ""),
	}
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
