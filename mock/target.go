package mock

import (
	"context"

	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.TargetFrontier = (*TargetFrontier)(nil)

// TargetFrontier is a mock implementation of taxdoc.TargetFrontier.
type TargetFrontier struct {
	PushFn func(target taxdoc.Target) bool
	PopFn  func() (taxdoc.Target, bool)
	LenFn  func() int
	SeenFn func(key string) bool
}

func (f *TargetFrontier) Push(target taxdoc.Target) bool {
	return f.PushFn(target)
}

func (f *TargetFrontier) Pop() (taxdoc.Target, bool) {
	return f.PopFn()
}

func (f *TargetFrontier) Len() int {
	return f.LenFn()
}

func (f *TargetFrontier) Seen(key string) bool {
	return f.SeenFn(key)
}

var _ taxdoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of taxdoc.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ taxdoc.OutputStore = (*OutputStore)(nil)

// OutputStore is a mock implementation of taxdoc.OutputStore.
type OutputStore struct {
	SaveFn   func(ctx context.Context, doc *taxdoc.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *OutputStore) Save(ctx context.Context, doc *taxdoc.Document) error {
	return s.SaveFn(ctx, doc)
}

func (s *OutputStore) Commit() error {
	return s.CommitFn()
}

func (s *OutputStore) Abort() error {
	return s.AbortFn()
}
