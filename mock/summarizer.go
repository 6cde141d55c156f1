package mock

import (
	"context"

	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of taxdoc.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, content string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	return s.SummarizeFn(ctx, content)
}
