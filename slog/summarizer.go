package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   taxdoc.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next taxdoc.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

func (s *LoggingSummarizer) Summarize(ctx context.Context, content string) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"bytes", len(content),
			"summary_bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, content)
}
