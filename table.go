package taxdoc

import "strings"

// RenderTable renders a captioned grid as a pipe table. The caption, when
// present, is emitted as a bold line followed by a blank line. An empty grid
// renders as the empty string and must be skipped by the caller.
func RenderTable(g Grid, c Caption) string {
	if g.Empty() {
		return ""
	}

	lines := make([]string, 0, len(g)+3)
	if caption := c.String(); caption != "" {
		lines = append(lines, "**"+caption+"**", "")
	}

	lines = append(lines, renderRow(g[0]))
	lines = append(lines, "|"+strings.Repeat("---|", g.Width()))
	for _, row := range g[1:] {
		lines = append(lines, renderRow(row))
	}
	return strings.Join(lines, "\n")
}

func renderRow(row []string) string {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = escapeCell(cell)
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

// escapeCell keeps a cell on one line and protects literal pipes.
func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
