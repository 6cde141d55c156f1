package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/taxdoc"
)

// Ensure Converter implements taxdoc.DocumentConverter at compile time.
var _ taxdoc.DocumentConverter = (*Converter)(nil)

// Converter converts the markup of a legal document into structured text.
// A Converter holds no per-document state and is safe for concurrent use.
type Converter struct {
	// ContainerID is the id of the element holding the document body.
	// When absent from the markup the whole body is used.
	ContainerID string

	// TableClass marks the tables that take part in classification.
	TableClass string

	// Fallback converts the markup when no content blocks are found.
	// Optional.
	Fallback taxdoc.Converter
}

// NewConverter returns a Converter with the default container id and table
// class.
func NewConverter(fallback taxdoc.Converter) *Converter {
	return &Converter{
		ContainerID: DefaultContainerID,
		TableClass:  DefaultTableClass,
		Fallback:    fallback,
	}
}

// ConvertDocument classifies the markup, extracts its blocks and rebuilds
// the section hierarchy for the document type.
func (c *Converter) ConvertDocument(rawHTML string, docType taxdoc.DocumentType) (*taxdoc.Conversion, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	container := c.container(doc)

	structure := taxdoc.StructureNormal
	if docType.MergesTables() {
		structure = Classify(container, c.TableClass)
	}

	blocks := ExtractBlocks(container, c.TableClass, structure.MergesTables())
	conv := &taxdoc.Conversion{Structure: structure}
	for _, b := range blocks {
		switch {
		case b.Kind == taxdoc.BlockParagraph:
			conv.Paragraphs++
		case !b.Grid.Empty():
			conv.Tables++
		}
	}

	if conv.Paragraphs+conv.Tables > 0 {
		conv.Text = taxdoc.Assemble(blocks, docType.Hierarchy())
		return conv, nil
	}

	return c.fallback(rawHTML, conv)
}

func (c *Converter) container(doc *goquery.Document) *goquery.Selection {
	if c.ContainerID != "" {
		if sel := doc.Find("#" + c.ContainerID).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("body").First()
}

func (c *Converter) fallback(rawHTML string, conv *taxdoc.Conversion) (*taxdoc.Conversion, error) {
	if c.Fallback != nil {
		text, err := c.Fallback.Convert(rawHTML)
		if err != nil && taxdoc.ErrorCode(err) != taxdoc.EINVALID {
			return nil, err
		}
		if text = strings.TrimSpace(text); text != "" {
			conv.Text = text
			conv.Fallback = true
			return conv, nil
		}
	}
	return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "no convertible content")
}
