package taxdoc

import "context"

// Fetcher downloads the HTML of a document page. The browser implementation
// returns the DOM after scripts have run; the static one returns the response
// body decoded to UTF-8.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
	Close() error
}

// ExtractResult is the main content found on a full page.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// Extractor isolates the main content of a page that has no document
// container, so the converter can still find its tables and paragraphs.
// It returns ENOTFOUND when the page holds nothing usable.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// TokenCounter reports the model token count of converted text. Counts are
// stored with fetch results to size summarization requests.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
