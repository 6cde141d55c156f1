// Package readability is the last-resort main content extractor.
package readability

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/taxdoc"
	"github.com/go-shiori/go-readability"
)

var _ taxdoc.Extractor = (*Extractor)(nil)

// Extractor scores the page with go-readability. Relative links in the
// article are resolved against BaseURL when it is set.
type Extractor struct {
	BaseURL  *url.URL
	MinRunes int
}

// NewExtractor returns an Extractor without a base URL that accepts any
// non-empty article.
func NewExtractor() *Extractor {
	return &Extractor{MinRunes: 1}
}

// Extract returns the readable article of rawHTML, or ENOTFOUND when the
// article text is shorter than MinRunes.
func (e *Extractor) Extract(rawHTML string) (*taxdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.BaseURL)
	if err != nil {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "no article content: %v", err)
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" || utf8.RuneCountInString(text) < e.MinRunes {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "no article content")
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = strings.TrimSpace(article.SiteName)
	}
	return &taxdoc.ExtractResult{
		Title:       title,
		ContentHTML: article.Content,
	}, nil
}
