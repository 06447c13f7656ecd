package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a static table with columns sized to their widest cell.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) View(s Styles) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Padding(0, 1) counts towards Width.
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(s.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	line := func(style lipgloss.Style, cells []string) {
		parts := make([]string, 0, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts = append(parts, style.Width(w).Render(cell))
		}
		sb.WriteString(strings.Join(parts, "│"))
		sb.WriteString("\n")
	}

	line(s.Header, t.Headers)
	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(strings.Repeat("─", total+len(widths)-1))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		line(s.Cell, row)
	}
	return sb.String()
}
