package taxdoc

import (
	"context"
	"strings"
)

// Target identifies one document to retrieve and convert.
type Target struct {
	DocNumber string       `json:"docNumber"`
	URL       string       `json:"url"`
	Type      DocumentType `json:"type"`

	// Priority orders the queue; higher values are processed first.
	Priority int `json:"priority,omitempty"`
}

// Key returns the deduplication key of the target: the document number
// when known, otherwise the URL without fragment.
func (t Target) Key() string {
	if t.DocNumber != "" {
		return t.DocNumber
	}
	return StripFragment(t.URL)
}

// StripFragment removes the fragment from a URL.
func StripFragment(url string) string {
	url, _, _ = strings.Cut(url, "#")
	return url
}

// TargetFrontier is a deduplicating queue of targets.
type TargetFrontier interface {
	// Push adds a target to the frontier.
	// Returns false if the target has already been seen.
	Push(target Target) bool

	// Pop returns the next target by priority, then insertion order.
	// Returns false if the frontier is empty.
	Pop() (Target, bool)

	// Len returns the number of queued targets.
	Len() int

	// Seen returns true if a target with the key has been queued.
	Seen(key string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// OutputStore persists converted documents with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type OutputStore interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}
