package tasks

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewoodward/todolist/cmd/cli/output"
	"github.com/ewoodward/todolist/cmd/cli/root"
	"github.com/ewoodward/todolist/internal/db"
	"github.com/ewoodward/todolist/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect and clean up tasks",
	}

	tasksCmd.AddCommand(listTasksCmd(), purgeTasksCmd())
	root.GetRoot().AddCommand(tasksCmd)
}

func listTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one user's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("user")
			database, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer database.Close()
			return listTasks(cmd, database, username)
		},
	}
	cmd.Flags().String("user", "", "username whose tasks to list")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func purgeTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete all completed tasks, for every user",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer database.Close()
			return purgeTasks(cmd, database)
		},
	}
}

// ==========================
// List Tasks
// ==========================
func listTasks(cmd *cobra.Command, database *db.DB, username string) error {
	userRepo := repo.NewUserRepo(database)
	taskRepo := repo.NewTaskRepo(database)

	user, err := userRepo.GetByUsername(cmd.Context(), username)
	if err != nil {
		return fmt.Errorf("look up user %q: %w", username, err)
	}

	tasks, err := taskRepo.ListByOwner(cmd.Context(), user.ID)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(tasks))
	for _, task := range tasks {
		status := "open"
		if task.Completed {
			status = "done"
		}
		rows = append(rows, []interface{}{task.ID, task.Task, status})
	}
	output.RenderTable([]string{"ID", "TASK", "STATUS"}, rows)
	return nil
}

// ==========================
// Purge Completed Tasks
// ==========================
func purgeTasks(cmd *cobra.Command, database *db.DB) error {
	taskRepo := repo.NewTaskRepo(database)

	n, err := taskRepo.DeleteCompleted(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(output.Writer, "Deleted %d completed task(s)\n", n)
	return nil
}
