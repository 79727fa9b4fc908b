package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ewoodward/todolist/internal/db"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "todo",
	Short: "To-do list admin CLI",
	Long:  "Command line interface for administering the to-do list database",
}

func init() {
	RootCmd.PersistentFlags().String("database-url", "", "database to operate on (defaults to $DATABASE_URL, then todo.db)")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// OpenDB opens the database named by --database-url, falling back to the
// DATABASE_URL environment variable and then the same default the web
// server uses.
func OpenDB() (*db.DB, error) {
	dsn, _ := RootCmd.PersistentFlags().GetString("database-url")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		dsn = "todo.db"
	}
	return db.Open(dsn, 2, 2)
}
