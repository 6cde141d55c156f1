package gemini

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/taxdoc"
	"golang.org/x/text/unicode/norm"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ taxdoc.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates document size with the local Gemini tokenizer, so no
// API key or network round trip is needed per document.
type TokenCounter struct {
	mu  sync.Mutex
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model. An empty model selects
// DefaultModel. The tokenizer vocabulary is downloaded on first use and
// cached by the genai package.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, taxdoc.Errorf(taxdoc.EINVALID, "no local tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens of text after NFC normalization, so decomposed
// Hangul from legacy encodings counts the same as precomposed text. Blank
// text counts zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(norm.NFC.String(text), genai.RoleUser),
	}

	tc.mu.Lock()
	result, err := tc.tok.CountTokens(contents, nil)
	tc.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
