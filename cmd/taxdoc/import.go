package main

import (
	"fmt"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/fs"
)

// Run executes the import command. Documents whose number is already
// stored are skipped.
func (c *ImportCmd) Run(deps *Dependencies) error {
	docs, err := fs.ReadDir(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}

	var imported, skipped int
	for _, doc := range docs {
		err := deps.Documents.CreateDocument(deps.Ctx, doc)
		switch {
		case err == nil:
			imported++
		case taxdoc.ErrorCode(err) == taxdoc.ECONFLICT:
			skipped++
			fmt.Fprintf(deps.Stderr, "  skip %s: already stored\n", doc.DocNumber)
		default:
			fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Imported %d documents", imported)
	if skipped > 0 {
		fmt.Fprintf(deps.Stdout, " (%d skipped)", skipped)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
