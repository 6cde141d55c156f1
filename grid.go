package taxdoc

// Span limits, matching what browsers honor.
const (
	MaxColSpan = 1000
	MaxRowSpan = 65534
)

// Cell is a physical table cell as it appears in markup, before spans are
// resolved. Span values below 1 are treated as 1 and values above the span
// limits are clamped.
type Cell struct {
	Text    string
	ColSpan int
	RowSpan int
}

// Grid is a rectangular matrix of cell text. Every row has the same length and
// the first row is rendered as the table header.
type Grid [][]string

// Empty reports whether the grid has no rows.
func (g Grid) Empty() bool {
	return len(g) == 0
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// BuildGrid resolves row and column spans into a rectangular Grid.
//
// A cell with colspan N repeats its text across N columns. A cell with
// rowspan N reserves its columns in the next N-1 rows, which receive empty
// strings. Rows that produce no cells are dropped and short rows are padded
// on the right. A table without rows or without any text yields a nil Grid.
func BuildGrid(rows [][]Cell) Grid {
	// pending maps a column to the number of rows still covered by a rowspan.
	pending := make(map[int]int)

	var grid Grid
	width := 0
	hasText := false

	for _, row := range rows {
		var out []string
		col := 0

		skipSpanned := func() {
			for pending[col] > 0 {
				out = append(out, "")
				pending[col]--
				col++
			}
		}

		for _, cell := range row {
			skipSpanned()

			colspan := min(max(cell.ColSpan, 1), MaxColSpan)
			rowspan := min(max(cell.RowSpan, 1), MaxRowSpan)
			for i := 0; i < colspan; i++ {
				// A malformed span can overlap a reserved column; the
				// physical cell wins and the reservation is consumed.
				if pending[col+i] > 0 {
					pending[col+i]--
				}
				if rowspan > 1 {
					pending[col+i] = rowspan - 1
				}
				out = append(out, cell.Text)
			}
			if cell.Text != "" {
				hasText = true
			}
			col += colspan
		}

		// Drain reserved columns at the tail of the row.
		last := lastPending(pending)
		for ; col <= last; col++ {
			out = append(out, "")
			if pending[col] > 0 {
				pending[col]--
			}
		}

		if len(out) == 0 {
			continue
		}
		width = max(width, len(out))
		grid = append(grid, out)
	}

	if !hasText {
		return nil
	}

	for i, row := range grid {
		for len(row) < width {
			row = append(row, "")
		}
		grid[i] = row
	}
	return grid
}

// lastPending returns the highest column with a remaining rowspan, or -1.
func lastPending(pending map[int]int) int {
	last := -1
	for col, n := range pending {
		if n > 0 && col > last {
			last = col
		}
	}
	return last
}
