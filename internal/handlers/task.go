package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ewoodward/todolist/internal/metrics"
	"github.com/ewoodward/todolist/internal/repo"
	"github.com/ewoodward/todolist/internal/session"
	"github.com/go-chi/chi/v5"
)

// ==========================
// TaskHandler
// ==========================

// TaskHandler serves the task pages. Every route sits behind
// session.RequireUser, and the owner id is always taken from the session,
// never from the request.
type TaskHandler struct {
	Tasks *repo.TaskRepo
}

// ==========================
// Index
// ==========================
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	user, ok := session.CurrentUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	tasks, err := h.Tasks.ListByOwner(r.Context(), user.ID)
	if err != nil {
		slog.Error("list tasks", "user_id", user.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	render(w, "index.html", map[string]interface{}{
		"Username": user.Username,
		"Tasks":    tasks,
		"Flash":    popFlash(w, r),
	})
}

// ==========================
// Add Task
// ==========================
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := session.CurrentUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	input := struct {
		Task string `validate:"required,max=200"`
	}{Task: r.FormValue("task")}

	if err := validate.Struct(input); err != nil {
		setFlash(w, "Task description must be 1-200 characters.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if _, err := h.Tasks.Create(r.Context(), user.ID, input.Task); err != nil {
		h.serverError(w, r, err)
		return
	}

	metrics.RecordTaskMutation("created")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Toggle Completed
// ==========================
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := session.CurrentUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		setFlash(w, "Task not found.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if _, err := h.Tasks.Toggle(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			setFlash(w, "Task not found.")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	metrics.RecordTaskMutation("toggled")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Delete Task
// ==========================
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := session.CurrentUser(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		setFlash(w, "Task not found.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.Tasks.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			setFlash(w, "Task not found.")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	metrics.RecordTaskMutation("deleted")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *TaskHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("task handler", "path", r.URL.Path, "error", err)
	setFlash(w, "Something went wrong. Please try again.")
	http.Redirect(w, r, "/", http.StatusFound)
}
