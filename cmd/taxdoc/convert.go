package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/crawl"
	"golang.org/x/text/unicode/norm"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	number := c.Number
	if number == "" {
		number = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
	}
	target := taxdoc.Target{
		DocNumber: number,
		Type:      taxdoc.ParseDocumentType(c.Type),
	}

	doc, err := c.build(deps, target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}

	if err := writeDocument(deps, deps.Stdout, doc, c.Format, c.WithMetadata); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", taxdoc.ErrorMessage(err))
		return err
	}
	return nil
}

func (c *ConvertCmd) build(deps *Dependencies, target taxdoc.Target) (*taxdoc.Document, error) {
	if c.Plain {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, taxdoc.Errorf(taxdoc.EINVALID, "read %s: %v", c.File, err)
		}
		return &taxdoc.Document{
			DocNumber: target.DocNumber,
			Type:      target.Type,
			Content:   target.Type.Hierarchy().Structure(norm.NFC.String(string(data))),
			Metadata:  taxdoc.Metadata{DocNumber: target.DocNumber},
		}, nil
	}

	html, err := crawl.ReadHTML(c.File)
	if err != nil {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "read %s: %v", c.File, err)
	}
	return deps.Pipeline.Build(html, target)
}
