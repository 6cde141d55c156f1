package main

import (
	"fmt"

	"github.com/fwojciec/taxdoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return taxdoc.Errorf(taxdoc.EINVALID, "use --force to confirm deletion")
	}

	doc, err := findDocument(deps, c.DocNumber)
	if err != nil {
		return err
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, doc.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %q\n", doc.DocNumber)
	return nil
}
