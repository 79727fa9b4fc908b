package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ewoodward/todolist/internal/metrics"
	"github.com/ewoodward/todolist/internal/repo"
	"github.com/robfig/cron/v3"
)

// Run starts a background scheduler with a single job that permanently
// removes completed tasks at each tick of expr (standard 5-field cron
// expression). The returned cron can be stopped by the caller; an invalid
// expression is reported before anything starts.
func Run(tasks *repo.TaskRepo, expr string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(expr, func() {
		n, err := tasks.DeleteCompleted(context.Background())
		if err != nil {
			slog.Error("scheduler: purge completed tasks", "error", err)
			return
		}
		if n > 0 {
			metrics.TasksPurged.Add(float64(n))
		}
		slog.Info("scheduler: purged completed tasks", "removed", n)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	c.Start()
	slog.Info("scheduler: purge job started", "cron", expr)
	return c, nil
}
