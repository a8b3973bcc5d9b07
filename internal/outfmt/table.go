package outfmt

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders rows under header as a light box table.
func WriteTable(w io.Writer, header []string, rows [][]any) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	t.AppendHeader(hdr)
	for _, r := range rows {
		t.AppendRow(table.Row(r))
	}
	t.Render()
}
