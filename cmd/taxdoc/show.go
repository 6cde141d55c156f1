package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/taxdoc"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := findDocument(deps, c.DocNumber)
	if err != nil {
		return err
	}

	if c.Full {
		if err := writeDocument(deps, deps.Stdout, doc, c.Format, true); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
			return err
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s\n", doc.DocNumber)
	if doc.Title != "" {
		fmt.Fprintf(deps.Stdout, "  Title:     %s\n", doc.Title)
	}
	fmt.Fprintf(deps.Stdout, "  Type:      %s\n", doc.Type)
	fmt.Fprintf(deps.Stdout, "  Structure: %s\n", doc.Structure)
	if doc.SourceURL != "" {
		fmt.Fprintf(deps.Stdout, "  Source:    %s\n", doc.SourceURL)
	}
	fmt.Fprintf(deps.Stdout, "  Hash:      %s\n", doc.ContentHash)
	if doc.Summary != "" {
		fmt.Fprintf(deps.Stdout, "  Summary:   %s\n", doc.Summary)
	}

	sections := taxdoc.ExtractSections(doc.Content)
	if len(sections) > 0 {
		fmt.Fprintf(deps.Stdout, "\nSections (%d):\n", len(sections))
		for _, s := range sections {
			if s.Level > 2 {
				continue
			}
			fmt.Fprintf(deps.Stdout, "  %s%s\n", strings.Repeat("  ", s.Level-1), s.Title)
		}
	}
	return nil
}

// findDocument looks up a document by number and reports a missing one
// on stderr.
func findDocument(deps *Dependencies, number string) (*taxdoc.Document, error) {
	doc, err := deps.Documents.FindDocumentByNumber(deps.Ctx, number)
	if taxdoc.ErrorCode(err) == taxdoc.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'taxdoc list' to see stored documents.\n", number)
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return nil, err
	}
	return doc, nil
}
