package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/taxdoc"
)

// ReadCells returns the physical cells of a table row by row. Rows of nested
// tables are excluded. Missing or malformed span attributes read as 1, and
// oversized spans are clamped to taxdoc.MaxColSpan and taxdoc.MaxRowSpan.
func ReadCells(table *goquery.Selection) [][]taxdoc.Cell {
	var rows [][]taxdoc.Cell
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !ownedBy(tr, table) {
			return
		}
		var row []taxdoc.Cell
		tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, taxdoc.Cell{
				Text:    cellText(td),
				ColSpan: spanAttr(td, "colspan", taxdoc.MaxColSpan),
				RowSpan: spanAttr(td, "rowspan", taxdoc.MaxRowSpan),
			})
		})
		rows = append(rows, row)
	})
	return rows
}

// ownedBy reports whether the nearest enclosing table of sel is table.
func ownedBy(sel, table *goquery.Selection) bool {
	owner := sel.Closest("table")
	return owner.Length() > 0 && owner.Get(0) == table.Get(0)
}

func spanAttr(sel *goquery.Selection, name string, limit int) int {
	v, ok := sel.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, limit)
}
