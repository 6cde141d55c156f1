package main

import (
	"fmt"

	"github.com/fwojciec/taxdoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := taxdoc.DocumentFilter{Limit: c.Limit}
	if c.Type != "" {
		t := taxdoc.ParseDocumentType(c.Type)
		filter.Type = &t
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'taxdoc fetch' or 'taxdoc import' to add some.")
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, taxdoc.FormatDocuments(docs))
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", d.DocNumber, d.Type, d.Title)
	}
	return nil
}
