package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/crawl"
	"github.com/fwojciec/taxdoc/fs"
)

// Run executes the convert-dir command.
func (c *ConvertDirCmd) Run(deps *Dependencies) error {
	files, err := crawl.ListHTML(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no HTML files in %s\n", c.Dir)
		return taxdoc.Errorf(taxdoc.ENOTFOUND, "no HTML files in %s", c.Dir)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 && deps.Config != nil {
		concurrency = deps.Config.Concurrency
	}

	out := filepath.Clean(c.Out)
	batch := &crawl.Batch{
		Pipeline:    deps.Pipeline,
		Store:       fs.NewFileStore(filepath.Dir(out), filepath.Base(out)),
		Concurrency: concurrency,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d files\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", filepath.Base(event.URL), taxdoc.ErrorMessage(event.Error))
		}
	}

	result, err := batch.ConvertFiles(deps.Ctx, files, taxdoc.ParseDocumentType(c.Type), progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error converting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Converted %d documents (%s) to %s\n", result.Saved, crawl.FormatBytes(result.Bytes), out)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d failed\n", result.Failed)
	}
	return nil
}
