package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ewoodward/todolist/internal/db"
	"github.com/ewoodward/todolist/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *db.DB
}

func NewUserRepo(database *db.DB) *UserRepo {
	return &UserRepo{DB: database}
}

// ==========================
// Create User
// ==========================

// Create inserts a user with a pre-hashed password. Returns ErrDuplicate when
// the username is already taken (case-sensitive exact match on the UNIQUE
// column).
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := r.DB.Rebind(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username
	`)

	user := &models.User{PasswordHash: passwordHash}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&user.ID, &user.Username)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := r.DB.Rebind(`
		SELECT id, username, password_hash
		FROM users
		WHERE id = $1
	`)

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.DB.Rebind(`
		SELECT id, username, password_hash
		FROM users
		WHERE username = $1
	`)

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return user, nil
}

// ==========================
// List Users (with task counts, for the admin CLI)
// ==========================

type UserSummary struct {
	ID       int
	Username string
	Open     int
	Done     int
}

func (r *UserRepo) List(ctx context.Context) ([]UserSummary, error) {
	query := `
		SELECT u.id, u.username,
		       COUNT(t.id) FILTER (WHERE NOT t.completed),
		       COUNT(t.id) FILTER (WHERE t.completed)
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.id
		GROUP BY u.id, u.username
		ORDER BY u.id
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []UserSummary
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Open, &u.Done); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
