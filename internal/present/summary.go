package present

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonesrussell/gopicker/internal/picker"
)

// RenderSummary writes the configuration as a table.
func RenderSummary(w io.Writer, pageURL string, cfg picker.Configuration) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"URL", pageURL},
		{"Section", cfg.Section()},
		{"Row selector", cfg.RowSelector},
		{"Item selector", cfg.ItemSelector},
		{"Pagination mode", string(cfg.Pagination.Mode)},
		{"Pagination selector", cfg.Pagination.Selector},
	})
	t.Render()
}
