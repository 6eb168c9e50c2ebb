package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"billsheet/timesheet"
)

const DefaultPreviewRows = 100

var (
	colorHeader = lipgloss.Color("#fe8019")
	colorDim    = lipgloss.Color("#928374")
	colorGreen  = lipgloss.Color("#8ec07c")

	styleHeader   = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleBillable = lipgloss.NewStyle().Foreground(colorGreen)
)

// PreviewRow is one record prepared for display, with an optional reason
// column explaining the Billable value.
type PreviewRow struct {
	Record timesheet.Record
	Reason string
}

// RenderPreview renders at most limit records as an aligned table. A
// non-positive limit renders every record. The preview never affects what
// gets exported.
func RenderPreview(rows []PreviewRow, limit int, explain bool) string {
	headers := append([]string(nil), timesheet.Columns...)
	if explain {
		headers = append(headers, "Reason")
	}

	shown := rows
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	cells := make([][]string, 0, len(shown))
	for _, row := range shown {
		values := row.Record.Values()
		if row.Record.Billable.Bool() {
			values[3] = styleBillable.Render(values[3])
		}
		if explain {
			values = append(values, row.Reason)
		}
		cells = append(cells, values)
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, cells))
	if len(rows) > len(shown) {
		b.WriteString(styleDim.Render(fmt.Sprintf("... %d more rows not shown (export contains all %d)", len(rows)-len(shown), len(rows))))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTable renders headers and rows with columns padded to the widest
// visible cell.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(styleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
