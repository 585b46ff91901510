package formatting

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes header and rows to w as a rounded-style table.
func RenderTable(w io.Writer, header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	headerRow := make(table.Row, 0, len(header))
	for _, h := range header {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tableRow := make(table.Row, 0, len(row))
		for _, cell := range row {
			tableRow = append(tableRow, cell)
		}
		t.AppendRow(tableRow)
	}

	t.Render()
}
