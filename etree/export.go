// Package etree exports structured documents as XML section trees.
package etree

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/taxdoc"
)

// DefaultIndent is the number of spaces used to indent nested elements.
const DefaultIndent = 2

// Exporter renders the content of a document as nested section elements.
// Body lines become <p> elements and consecutive pipe-table lines are kept
// as one <table> element holding the markdown source.
type Exporter struct {
	Indent int
}

// NewExporter creates an Exporter with the default indentation.
func NewExporter() *Exporter {
	return &Exporter{Indent: DefaultIndent}
}

// Export returns the XML rendering of doc.
func (e *Exporter) Export(doc *taxdoc.Document) (string, error) {
	if doc == nil {
		return "", taxdoc.Errorf(taxdoc.EINVALID, "document required")
	}
	x := e.Build(doc)
	s, err := x.WriteToString()
	if err != nil {
		return "", taxdoc.Errorf(taxdoc.EINTERNAL, "write xml: %v", err)
	}
	return s, nil
}

// Build returns the XML tree of doc without serializing it.
func (e *Exporter) Build(doc *taxdoc.Document) *etree.Document {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("document")
	if doc.DocNumber != "" {
		root.CreateAttr("number", doc.DocNumber)
	}
	root.CreateAttr("type", string(doc.Type))
	root.CreateAttr("structure", doc.Structure.String())
	if doc.Title != "" {
		root.CreateElement("title").SetText(doc.Title)
	}
	if doc.SourceURL != "" {
		root.CreateElement("source").SetText(doc.SourceURL)
	}

	appendContent(root, doc.Content)

	if e.Indent > 0 {
		x.Indent(e.Indent)
	}
	return x
}

func appendContent(root *etree.Element, content string) {
	sections := taxdoc.ExtractSections(content)
	next := 0

	type open struct {
		level int
		elem  *etree.Element
	}
	var stack []open
	var table []string

	parent := func() *etree.Element {
		if len(stack) == 0 {
			return root
		}
		return stack[len(stack)-1].elem
	}
	flushTable := func() {
		if len(table) == 0 {
			return
		}
		parent().CreateElement("table").SetCData(strings.Join(table, "\n"))
		table = nil
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "|") {
			table = append(table, line)
			continue
		}
		flushTable()

		if _, _, ok := taxdoc.ParseHeading(line); ok && next < len(sections) {
			s := sections[next]
			next++
			for len(stack) > 0 && stack[len(stack)-1].level >= s.Level {
				stack = stack[:len(stack)-1]
			}
			el := parent().CreateElement("section")
			el.CreateAttr("level", strconv.Itoa(s.Level))
			el.CreateAttr("title", s.Title)
			el.CreateAttr("anchor", s.Anchor)
			stack = append(stack, open{level: s.Level, elem: el})
			continue
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		parent().CreateElement("p").SetText(text)
	}
	flushTable()
}
