package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/ewoodward/todolist/internal/config"
	"github.com/ewoodward/todolist/internal/db"
	"github.com/ewoodward/todolist/internal/repo"
	"github.com/ewoodward/todolist/internal/scheduler"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.SecretKey == config.DefaultSecretKey {
		log.Fatal("SECRET_KEY must be set to a non-default value when ENV=prod")
	}

	// Connect to the store FIRST; a server without storage is useless.
	database, err := db.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	slog.Info("connected to database", "dialect", string(database.Dialect))

	if cfg.PurgeCompletedCron != "" {
		if _, err := scheduler.Run(repo.NewTaskRepo(database), cfg.PurgeCompletedCron); err != nil {
			log.Fatalf("Failed to start purge scheduler: %v", err)
		}
	}

	r := newRouter(database, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server", "addr", addr, "tls", true)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	log.Fatal(err)
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}
}
