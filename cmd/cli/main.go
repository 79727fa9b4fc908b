package main

import (
	"github.com/ewoodward/todolist/cmd/cli/root"

	_ "github.com/ewoodward/todolist/cmd/cli/tasks"
	_ "github.com/ewoodward/todolist/cmd/cli/users"
)

func main() {
	root.Execute()
}
