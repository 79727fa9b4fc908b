package main

import (
	"net/http"
	"time"

	"github.com/ewoodward/todolist/internal/config"
	"github.com/ewoodward/todolist/internal/db"
	"github.com/ewoodward/todolist/internal/handlers"
	mw "github.com/ewoodward/todolist/internal/middleware"
	"github.com/ewoodward/todolist/internal/repo"
	"github.com/ewoodward/todolist/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the full HTTP surface: health/metrics, the public auth
// pages, and the session-guarded task pages.
func newRouter(database *db.DB, cfg config.Config) http.Handler {
	users := repo.NewUserRepo(database)
	tasks := repo.NewTaskRepo(database)

	sessions := &session.Manager{
		Secret: []byte(cfg.SecretKey),
		TTL:    time.Duration(cfg.SessionTTLHours) * time.Hour,
		Users:  users,
	}

	authHandler := &handlers.AuthHandler{Users: users, Sessions: sessions}
	taskHandler := &handlers.TaskHandler{Tasks: tasks}

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLog)
	r.Use(mw.Recoverer)
	r.Use(mw.SecurityHeaders(useTLS))
	r.Use(mw.Prometheus)
	r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireUser)
		r.Get("/", taskHandler.Index)
		r.Post("/add", taskHandler.Add)
		r.Get("/update/{id}", taskHandler.Toggle)
		r.Get("/delete/{id}", taskHandler.Delete)
		r.Get("/logout", authHandler.Logout)
	})

	return r
}
