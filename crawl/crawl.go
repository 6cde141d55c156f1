// Package crawl orchestrates batch retrieval and conversion of legal
// documents: deduplication, rate-limited fetching with retry, conversion
// and storage, with failures isolated per document.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/taxdoc"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration for target deduplication.
const (
	frontierFalsePositiveRate = 0.001
	minFrontierSize           = 1000
)

// Crawler retrieves and converts documents.
type Crawler struct {
	Fetcher   taxdoc.Fetcher
	Converter taxdoc.DocumentConverter
	Documents taxdoc.DocumentWriter

	// Optional collaborators.
	Extractor    taxdoc.Extractor
	Metadata     taxdoc.MetadataReader
	TokenCounter taxdoc.TokenCounter
	RateLimiter  taxdoc.DomainLimiter
	Logger       *slog.Logger

	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a batch operation.
type Result struct {
	Saved    int
	Failed   int
	Skipped  int
	Bytes    int
	Tokens   int
	Failures []Failure
}

// Failure records why one document was not saved.
type Failure struct {
	Key string
	Err error
}

// ProgressEvent reports progress during a batch operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// outcome holds the result of processing a single target.
type outcome struct {
	position int
	key      string
	url      string
	doc      *taxdoc.Document
	err      error
}

// Crawl fetches, converts and stores every target. Duplicate targets are
// skipped. Documents are stored in queue order regardless of the order in
// which fetches complete. A failing target never aborts the batch; the
// returned error is non-nil only when ctx is canceled.
func (c *Crawler) Crawl(ctx context.Context, targets []taxdoc.Target, progress ProgressFunc) (*Result, error) {
	frontier := NewFrontier(max(uint(len(targets)), minFrontierSize), frontierFalsePositiveRate)
	var result Result
	for _, t := range targets {
		if !frontier.Push(t) {
			result.Skipped++
		}
	}

	if c.Logger != nil {
		c.Logger.Debug("frontier", "queued", frontier.Len(), "skipped", result.Skipped, "seen_estimate", frontier.Estimated())
	}

	queue := make([]taxdoc.Target, 0, frontier.Len())
	for {
		t, ok := frontier.Pop()
		if !ok {
			break
		}
		queue = append(queue, t)
	}

	outcomes := runOrdered(ctx, c.Concurrency, queue, progress, func(ctx context.Context, i int, t taxdoc.Target) outcome {
		doc, err := c.process(ctx, t)
		return outcome{position: i, key: t.Key(), url: t.URL, doc: doc, err: err}
	})

	c.store(ctx, outcomes, &result)
	return &result, ctx.Err()
}

// runOrdered processes items with bounded parallelism and returns the
// outcomes indexed by input position.
func runOrdered[T any](ctx context.Context, concurrency int, items []T, progress ProgressFunc, fn func(context.Context, int, T) outcome) []outcome {
	if concurrency <= 0 {
		concurrency = 10
	}
	total := len(items)
	resultCh := make(chan outcome, total)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, item := range items {
			g.Go(func() error {
				resultCh <- fn(gctx, i, item)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]outcome, total)
	var completed atomic.Int64
	for o := range resultCh {
		n := int(completed.Add(1))
		outcomes[o.position] = o
		if progress == nil {
			continue
		}
		event := ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: o.url}
		if o.err != nil {
			event.Type = ProgressFailed
			event.Error = o.err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return outcomes
}

// store saves successful outcomes in order and accumulates statistics.
func (c *Crawler) store(ctx context.Context, outcomes []outcome, result *Result) {
	for _, o := range outcomes {
		if o.err != nil {
			result.fail(o.key, o.err)
			continue
		}
		if err := c.Documents.CreateDocument(ctx, o.doc); err != nil {
			result.fail(o.key, err)
			continue
		}
		result.Saved++
		result.Bytes += len(o.doc.Content)
		if c.TokenCounter != nil {
			if tokens, err := c.TokenCounter.CountTokens(ctx, o.doc.Content); err == nil {
				result.Tokens += tokens
			}
		}
	}
}

func (r *Result) fail(key string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{Key: key, Err: err})
}

// process runs the pipeline for one target.
func (c *Crawler) process(ctx context.Context, target taxdoc.Target) (*taxdoc.Document, error) {
	if c.RateLimiter != nil {
		if u, err := url.Parse(target.URL); err == nil && u.Host != "" {
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, target.URL, c.Fetcher.Fetch, delays, c.logRetry)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target.URL, err)
	}

	p := &Pipeline{Converter: c.Converter, Extractor: c.Extractor, Metadata: c.Metadata}
	doc, err := p.Build(html, target)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Crawler) logRetry(url string, attempt int, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug("retry fetch", "url", url, "attempt", attempt, "err", err)
}
