package goquery

import (
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/taxdoc"
	"golang.org/x/net/html"
)

// blockExtractor walks a content container in document order and collects
// paragraph and table blocks.
type blockExtractor struct {
	tableClass string
	merge      bool

	blocks     []taxdoc.Block
	paragraphs map[*html.Node]int
	captions   map[int]bool
}

// ExtractBlocks returns the ordered blocks of a content container. When
// merge is set, tables carrying tableClass are spliced into the flow as
// paragraphs; all other tables become table blocks with their captions.
// Paragraphs consumed as captions are removed from the flow.
func ExtractBlocks(container *goquery.Selection, tableClass string, merge bool) []taxdoc.Block {
	e := &blockExtractor{
		tableClass: tableClass,
		merge:      merge,
		paragraphs: make(map[*html.Node]int),
		captions:   make(map[int]bool),
	}
	container.Children().Each(func(_ int, sel *goquery.Selection) {
		e.visit(sel)
	})

	return slices.DeleteFunc(e.blocks, func(b taxdoc.Block) bool {
		return e.captions[b.Position]
	})
}

func (e *blockExtractor) visit(sel *goquery.Selection) {
	switch goquery.NodeName(sel) {
	case "p":
		e.paragraph(sel)
	case "table":
		if e.merge && sel.HasClass(e.tableClass) {
			e.spliceTable(sel)
			return
		}
		e.table(sel)
	case "script", "style":
	default:
		sel.Children().Each(func(_ int, child *goquery.Selection) {
			e.visit(child)
		})
	}
}

func (e *blockExtractor) paragraph(sel *goquery.Selection) {
	text := blockText(sel)
	if text == "" {
		return
	}
	pos := len(e.blocks)
	e.paragraphs[sel.Get(0)] = pos
	e.blocks = append(e.blocks, taxdoc.NewParagraph(pos, text))
}

// spliceTable replaces a table with its cell content: each paragraph of a
// cell becomes a paragraph block, and a cell without paragraphs contributes
// its text.
func (e *blockExtractor) spliceTable(table *goquery.Selection) {
	table.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		if !ownedBy(cell, table) {
			return
		}
		ps := cell.Find("p")
		if ps.Length() == 0 {
			e.paragraph(cell)
			return
		}
		ps.Each(func(_ int, p *goquery.Selection) {
			e.paragraph(p)
		})
	})
}

func (e *blockExtractor) table(sel *goquery.Selection) {
	grid := taxdoc.BuildGrid(ReadCells(sel))
	caption, used := taxdoc.FindCaption(e.siblings(sel))
	// An empty table is not rendered, so its caption stays in the text.
	if !grid.Empty() {
		for _, pos := range used {
			e.captions[pos] = true
		}
	}
	e.blocks = append(e.blocks, taxdoc.NewTable(len(e.blocks), grid, caption))
}

// siblings returns the element siblings preceding sel in document order.
func (e *blockExtractor) siblings(sel *goquery.Selection) []taxdoc.Sibling {
	prev := sel.PrevAll()
	out := make([]taxdoc.Sibling, 0, prev.Length())
	for i := prev.Length() - 1; i >= 0; i-- {
		s := prev.Eq(i)
		out = append(out, taxdoc.Sibling{
			Positions: e.positions(s),
			Text:      normalizeText(s.Text()),
			Table:     goquery.NodeName(s) == "table" || s.Find("table").Length() > 0,
		})
	}
	return out
}

// positions returns the paragraph blocks emitted from sel and its
// descendants, in document order.
func (e *blockExtractor) positions(sel *goquery.Selection) []int {
	var out []int
	sel.Find("*").AddBack().Each(func(_ int, s *goquery.Selection) {
		if pos, ok := e.paragraphs[s.Get(0)]; ok {
			out = append(out, pos)
		}
	})
	return out
}
