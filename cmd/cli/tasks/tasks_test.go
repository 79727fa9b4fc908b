package tasks

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ewoodward/todolist/cmd/cli/output"
	"github.com/ewoodward/todolist/internal/db"
	"github.com/ewoodward/todolist/internal/repo"
)

func newTestDB(t *testing.T, name string) *db.DB {
	t.Helper()
	database, err := db.Open("file:"+name+"?mode=memory&cache=shared", 2, 2)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	old := output.Writer
	output.Writer = &buf
	defer func() { output.Writer = old }()

	fn()
	return buf.String()
}

// seedUserWithTasks creates a user plus one open and one completed task.
func seedUserWithTasks(t *testing.T, database *db.DB, username string) {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	userRepo := repo.NewUserRepo(database)
	taskRepo := repo.NewTaskRepo(database)

	user, err := userRepo.Create(cmd.Context(), username, "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if _, err := taskRepo.Create(cmd.Context(), user.ID, "open task"); err != nil {
		t.Fatalf("seed open task: %v", err)
	}
	done, err := taskRepo.Create(cmd.Context(), user.ID, "finished task")
	if err != nil {
		t.Fatalf("seed done task: %v", err)
	}
	if _, err := taskRepo.Toggle(cmd.Context(), done.ID, user.ID); err != nil {
		t.Fatalf("toggle done task: %v", err)
	}
}

func TestListTasks_TableOutput(t *testing.T) {
	database := newTestDB(t, "cli_tasks_list")
	seedUserWithTasks(t, database, "alice")
	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	out := captureOutput(t, func() {
		if err := listTasks(cmd, database, "alice"); err != nil {
			t.Errorf("listTasks: %v", err)
		}
	})

	if !strings.Contains(out, "open task") || !strings.Contains(out, "finished task") {
		t.Fatalf("expected both tasks in output, got: %s", out)
	}
	if !strings.Contains(out, "done") {
		t.Fatalf("expected completed status in output, got: %s", out)
	}
}

func TestListTasks_UnknownUser(t *testing.T) {
	database := newTestDB(t, "cli_tasks_unknown")
	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	if err := listTasks(cmd, database, "nobody"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestPurgeTasks(t *testing.T) {
	database := newTestDB(t, "cli_tasks_purge")
	seedUserWithTasks(t, database, "alice")
	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	out := captureOutput(t, func() {
		if err := purgeTasks(cmd, database); err != nil {
			t.Errorf("purgeTasks: %v", err)
		}
	})
	if !strings.Contains(out, "Deleted 1 completed task(s)") {
		t.Fatalf("expected purge count in output, got: %s", out)
	}

	// The open task survives.
	listed := captureOutput(t, func() {
		if err := listTasks(cmd, database, "alice"); err != nil {
			t.Errorf("listTasks: %v", err)
		}
	})
	if !strings.Contains(listed, "open task") {
		t.Fatalf("open task missing after purge: %s", listed)
	}
	if strings.Contains(listed, "finished task") {
		t.Fatalf("completed task still present after purge: %s", listed)
	}
}
