// Package trafilatura extracts the main content of full pages that lack the
// document content container.
package trafilatura

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/taxdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ taxdoc.Extractor = (*Extractor)(nil)

// DefaultMinRunes is the least main-content text accepted by NewExtractor.
const DefaultMinRunes = 20

// Extractor finds the main content node with go-trafilatura. Tables are kept
// so the document converter can rebuild them. Candidates with less than
// MinRunes of text, or with no Hangul at all, are rejected: on the portal
// those are cookie notices or error banners rather than rulings.
type Extractor struct {
	MinRunes int
}

// NewExtractor returns an Extractor with DefaultMinRunes.
func NewExtractor() *Extractor {
	return &Extractor{MinRunes: DefaultMinRunes}
}

// Extract returns the main content of rawHTML. It returns ENOTFOUND when no
// acceptable content node is detected.
func (e *Extractor) Extract(rawHTML string) (*taxdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "no main content")
	}

	text := strings.TrimSpace(result.ContentText)
	if utf8.RuneCountInString(text) < e.MinRunes || !containsHangul(text) {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "main content too short or not Korean")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &taxdoc.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: buf.String(),
	}, nil
}

func containsHangul(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return unicode.Is(unicode.Hangul, r) }) >= 0
}
