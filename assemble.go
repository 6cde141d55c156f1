package taxdoc

import "strings"

// Assemble renders table blocks, skipping empty ones, and feeds the ordered
// block sequence through the hierarchy builder. Rendered tables pass through
// as verbatim lines; paragraphs are split into lines.
func Assemble(blocks []Block, config *HierarchyConfig) string {
	return RenderUnits(config.Build(BlockLines(blocks)))
}

// BlockLines flattens blocks into hierarchy builder input.
func BlockLines(blocks []Block) []Line {
	var lines []Line
	for _, b := range blocks {
		switch b.Kind {
		case BlockTable:
			rendered := RenderTable(b.Grid, b.Caption)
			if rendered == "" {
				continue
			}
			lines = append(lines, Line{Text: rendered, Verbatim: true})
		default:
			for _, s := range strings.Split(b.Text, "\n") {
				if strings.TrimSpace(s) == "" {
					continue
				}
				lines = append(lines, Line{Text: s})
			}
		}
	}
	return lines
}
