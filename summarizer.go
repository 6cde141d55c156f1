package taxdoc

import "context"

// Summarizer produces a short summary of structured document text.
type Summarizer interface {
	// Summarize returns a summary of content.
	// Returns EINVALID if content is empty.
	Summarize(ctx context.Context, content string) (string, error)
}
