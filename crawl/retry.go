package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/taxdoc"
)

// FetchFunc retrieves the HTML of one URL.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the number of the upcoming
// attempt and the error of the failed one.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether a failed fetch may succeed on a later attempt.
// Missing documents, invalid requests and cancellation are final. A
// per-attempt timeout is not.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	switch taxdoc.ErrorCode(err) {
	case taxdoc.ENOTFOUND, taxdoc.EINVALID:
		return false
	}
	return true
}

// FetchWithRetry calls fetch until it succeeds, fails permanently, or the
// delays are exhausted; one attempt is made per delay plus the first.
// onRetry may be nil.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if attempt >= len(delays) || !Retryable(err) {
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}
		if err := sleep(ctx, delays[attempt]); err != nil {
			return "", err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
