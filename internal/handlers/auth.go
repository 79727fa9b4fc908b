package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ewoodward/todolist/internal/auth"
	"github.com/ewoodward/todolist/internal/metrics"
	"github.com/ewoodward/todolist/internal/repo"
	"github.com/ewoodward/todolist/internal/session"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// loginFailedMessage is intentionally generic: it does not reveal whether the
// username exists.
const loginFailedMessage = "Login failed. Check your username and password."

// ==========================
// AuthHandler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Sessions *session.Manager
}

// ==========================
// Login
// ==========================

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	// Already signed in: skip the form.
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if _, err := h.Sessions.Parse(cookie.Value); err == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}
	render(w, "login.html", map[string]interface{}{
		"Flash": popFlash(w, r),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			h.serverError(w, r, "/login", err)
			return
		}
		metrics.RecordLogin("failed")
		setFlash(w, loginFailedMessage)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		metrics.RecordLogin("failed")
		setFlash(w, loginFailedMessage)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	token, err := h.Sessions.Issue(user.ID)
	if err != nil {
		h.serverError(w, r, "/login", err)
		return
	}

	metrics.RecordLogin("ok")
	h.Sessions.SetCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Logout
// ==========================

// Logout invalidates the session immediately and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ==========================
// Register
// ==========================

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	render(w, "register.html", map[string]interface{}{
		"Flash": popFlash(w, r),
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	input := struct {
		Username string `validate:"required,max=100"`
		Password string `validate:"required,max=255"`
	}{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if err := validate.Struct(input); err != nil {
		setFlash(w, "Username must be 1-100 characters and a password is required.")
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		h.serverError(w, r, "/register", err)
		return
	}

	if _, err := h.Users.Create(r.Context(), input.Username, hash); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			setFlash(w, "Username already exists. Please choose another one.")
			http.Redirect(w, r, "/register", http.StatusFound)
			return
		}
		h.serverError(w, r, "/register", err)
		return
	}

	setFlash(w, "Registration successful!")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// serverError logs an unexpected storage failure and sends the user somewhere
// safe; internals are never surfaced to the client.
func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, redirect string, err error) {
	slog.Error("auth handler", "path", r.URL.Path, "error", err)
	setFlash(w, "Something went wrong. Please try again.")
	http.Redirect(w, r, redirect, http.StatusFound)
}
