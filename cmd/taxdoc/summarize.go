package main

import (
	"fmt"

	"github.com/fwojciec/taxdoc"
)

// Run executes the summarize command. The summary is stored with the
// document and printed.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	doc, err := findDocument(deps, c.DocNumber)
	if err != nil {
		return err
	}

	summary, err := deps.Summarizer.Summarize(deps.Ctx, doc.Content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}

	if _, err := deps.Documents.UpdateDocument(deps.Ctx, doc.ID, taxdoc.DocumentUpdate{Summary: &summary}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, summary)
	return nil
}
