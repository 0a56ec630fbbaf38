package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible width, so styled cells line up.
// Cells may span several lines; every line of a row is padded to its column.
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
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), widths[i], i == cols-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		writeCell(&b, StyleDim.Render(strings.Repeat("─", w)), w, i == cols-1)
	}
	b.WriteString("\n")

	for _, row := range rows {
		lines := make([][]string, cols)
		height := 1
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			lines[i] = strings.Split(cell, "\n")
			height = max(height, len(lines[i]))
		}
		for l := 0; l < height; l++ {
			for i := 0; i < cols; i++ {
				part := ""
				if l < len(lines[i]) {
					part = lines[i][l]
				}
				writeCell(&b, part, widths[i], i == cols-1)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeCell(b *strings.Builder, cell string, width int, last bool) {
	b.WriteString(cell)
	if last {
		return
	}
	pad := max(width-lipgloss.Width(cell), 0)
	b.WriteString(strings.Repeat(" ", pad+colGap))
}
