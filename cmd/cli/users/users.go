package users

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewoodward/todolist/cmd/cli/output"
	"github.com/ewoodward/todolist/cmd/cli/root"
	"github.com/ewoodward/todolist/internal/auth"
	"github.com/ewoodward/todolist/internal/db"
	"github.com/ewoodward/todolist/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
		Long:  "List accounts or create one directly in the database, bypassing the web signup form.",
	}

	usersCmd.AddCommand(listUsersCmd(), createUserCmd())
	root.GetRoot().AddCommand(usersCmd)
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts with task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer database.Close()
			return listUsers(cmd, database)
		},
	}
}

func createUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var username, password string
			fmt.Print("Username: ")
			fmt.Scanln(&username)
			fmt.Print("Password: ")
			fmt.Scanln(&password)

			database, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer database.Close()
			return createUser(cmd, database, username, password)
		},
	}
}

// ==========================
// List Users
// ==========================
func listUsers(cmd *cobra.Command, database *db.DB) error {
	userRepo := repo.NewUserRepo(database)

	summaries, err := userRepo.List(cmd.Context())
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []interface{}{s.ID, s.Username, s.Open, s.Done})
	}
	output.RenderTable([]string{"ID", "USERNAME", "OPEN", "DONE"}, rows)
	return nil
}

// ==========================
// Create User
// ==========================
func createUser(cmd *cobra.Command, database *db.DB, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	userRepo := repo.NewUserRepo(database)
	user, err := userRepo.Create(cmd.Context(), username, hash)
	if errors.Is(err, repo.ErrDuplicate) {
		return fmt.Errorf("username %q is already taken", username)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(output.Writer, "Created user %q with id %d\n", user.Username, user.ID)
	return nil
}
