package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/taxdoc"
)

// Classify decides how the domain tables of a content container relate to
// the surrounding text. Tables are matched by tableClass.
//
// Without domain tables the result is StructureNormal. When no paragraph
// outside the largest domain table carries text, the document is
// StructureTableOnly. Otherwise it is StructureDominantTable when the largest
// domain table holds strictly more than half of the container text.
func Classify(container *goquery.Selection, tableClass string) taxdoc.StructureTag {
	tables := container.Find("table." + tableClass)
	if tables.Length() == 0 {
		return taxdoc.StructureNormal
	}

	var largest *goquery.Selection
	largestLen := -1
	tables.Each(func(_ int, t *goquery.Selection) {
		if n := textLength(t); n > largestLen {
			largest, largestLen = t, n
		}
	})

	meaningfulOutside := false
	container.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if isWithin(p, largest) || isBlank(p) {
			return true
		}
		meaningfulOutside = true
		return false
	})
	if !meaningfulOutside {
		return taxdoc.StructureTableOnly
	}

	total := textLength(container)
	if total == 0 {
		return taxdoc.StructureNormal
	}
	// Integer form of largestLen/total > 0.5.
	if 2*largestLen > total {
		return taxdoc.StructureDominantTable
	}
	return taxdoc.StructureNormal
}

// isWithin reports whether sel is a descendant of ancestor.
func isWithin(sel, ancestor *goquery.Selection) bool {
	return sel.ParentsFiltered("table").FilterNodes(ancestor.Nodes...).Length() > 0
}
