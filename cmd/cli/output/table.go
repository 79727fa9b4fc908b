package output

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Writer is where tables are rendered. Tests swap it for a buffer.
var Writer io.Writer = os.Stdout

// RenderTable prints a pretty table to Writer
func RenderTable(headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(Writer)

	headerRow := table.Row{}
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	t.Render()
}
