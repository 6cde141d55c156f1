// Package slog provides log/slog decorators for taxdoc services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every fetch attempt. Successful fetches are logged at
// debug level; failures are logged as warnings with their error code, since
// the crawler retries or skips them without failing the batch.
type LoggingFetcher struct {
	next   taxdoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next taxdoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", host(rawURL),
			"url", rawURL,
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.WarnContext(ctx, "fetch failed", append(attrs, "code", taxdoc.ErrorCode(err), "err", err)...)
			return
		}
		f.logger.DebugContext(ctx, "fetch", append(attrs, "bytes", len(html))...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
