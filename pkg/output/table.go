package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// table renders aligned plain-text columns separated by " | ".
type table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

func newTable(headers ...string) *table {
	return &table{headers: headers, right: make(map[int]bool)}
}

// alignRight right-aligns the given columns.
func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) String() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	t.writeRow(&sb, t.headers, widths)

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 3 * (len(widths) - 1)
	sb.WriteString(strings.Repeat("-", total))
	sb.WriteString("\n")

	for _, row := range t.rows {
		t.writeRow(&sb, row, widths)
	}
	return sb.String()
}

func (t *table) writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		style := lipgloss.NewStyle().Width(w)
		if t.right[i] {
			style = style.Align(lipgloss.Right)
		}
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(style.Render(cell))
	}
	sb.WriteString("\n")
}
