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
// TaskRepo
// ==========================
type TaskRepo struct {
	DB *db.DB
}

func NewTaskRepo(database *db.DB) *TaskRepo {
	return &TaskRepo{DB: database}
}

// ==========================
// List By Owner
// ==========================

// ListByOwner returns every task belonging to userID in insertion order.
func (r *TaskRepo) ListByOwner(ctx context.Context, userID int) ([]models.Task, error) {
	query := r.DB.Rebind(`
		SELECT id, task, user_id, completed
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`)

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Task, &t.UserID, &t.Completed); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// ==========================
// Create Task
// ==========================
func (r *TaskRepo) Create(ctx context.Context, userID int, description string) (models.Task, error) {
	query := r.DB.Rebind(`
		INSERT INTO tasks (task, user_id, completed)
		VALUES ($1, $2, FALSE)
		RETURNING id, task, user_id, completed
	`)

	var task models.Task
	err := r.DB.QueryRowContext(ctx, query, description, userID).
		Scan(&task.ID, &task.Task, &task.UserID, &task.Completed)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// ==========================
// Toggle Completed
// ==========================

// Toggle flips the completed flag in a single statement so concurrent
// toggles of the same task cannot lose updates. The row must belong to
// userID; an id owned by someone else reports ErrNotFound, same as an absent
// id.
func (r *TaskRepo) Toggle(ctx context.Context, id, userID int) (models.Task, error) {
	query := r.DB.Rebind(`
		UPDATE tasks
		SET completed = NOT completed
		WHERE id = $1 AND user_id = $2
		RETURNING id, task, user_id, completed
	`)

	var task models.Task
	err := r.DB.QueryRowContext(ctx, query, id, userID).
		Scan(&task.ID, &task.Task, &task.UserID, &task.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("toggle task: %w", err)
	}

	return task, nil
}

// ==========================
// Delete Task
// ==========================

// Delete permanently removes the task. Same owner scoping as Toggle.
func (r *TaskRepo) Delete(ctx context.Context, id, userID int) error {
	query := r.DB.Rebind(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`)

	result, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ==========================
// Delete Completed (purge job)
// ==========================

// DeleteCompleted removes every completed task across all users and returns
// the number of rows removed.
func (r *TaskRepo) DeleteCompleted(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE completed`)
	if err != nil {
		return 0, fmt.Errorf("delete completed tasks: %w", err)
	}
	return result.RowsAffected()
}
