package main

import (
	"fmt"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/crawl"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if deps.Crawler == nil {
		return taxdoc.Errorf(taxdoc.EINTERNAL, "crawler not configured")
	}
	if c.Concurrency > 0 {
		deps.Crawler.Concurrency = c.Concurrency
	}

	var docType taxdoc.DocumentType
	if c.Type != "" {
		docType = taxdoc.ParseDocumentType(c.Type)
	}

	targets := make([]taxdoc.Target, len(c.URLs))
	for i, u := range c.URLs {
		targets[i] = taxdoc.Target{URL: u, Type: docType}
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Fetching %d documents\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(event.URL, 60), taxdoc.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, targets, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	dest := "the store"
	if c.Out != "" {
		dest = c.Out
	}
	fmt.Fprintf(deps.Stdout, "  Saved %d documents (%s, %s) to %s\n",
		result.Saved, crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens), dest)
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  Skipped %d duplicates\n", result.Skipped)
	}
	if result.Failed > 0 {
		return taxdoc.Errorf(taxdoc.EINTERNAL, "%d of %d documents failed", result.Failed, len(targets))
	}
	return nil
}
