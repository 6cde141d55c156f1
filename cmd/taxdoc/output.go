package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/taxdoc"
)

// writeDocument writes doc to w in the named format. The markdown format
// prepends the metadata header when withMetadata is set.
func writeDocument(deps *Dependencies, w io.Writer, doc *taxdoc.Document, format string, withMetadata bool) error {
	switch format {
	case "", "markdown":
		if withMetadata {
			_, err := io.WriteString(w, taxdoc.FormatDocument(&doc.Metadata, doc.Type, doc.Content))
			return err
		}
		_, err := fmt.Fprintln(w, doc.Content)
		return err
	case "xml":
		out, err := deps.Exporter.Export(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case "html":
		return deps.Renderer.RenderDocument(w, doc)
	case "outline":
		for _, s := range taxdoc.ExtractSections(doc.Content) {
			if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", s.Level-1), s.Title); err != nil {
				return err
			}
		}
		return nil
	default:
		return taxdoc.Errorf(taxdoc.EINVALID, "unknown format %q", format)
	}
}
