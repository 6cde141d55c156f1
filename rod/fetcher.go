// Package rod retrieves JavaScript-rendered document pages with headless Chrome.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/taxdoc"
	"github.com/go-rod/rod"
)

// Ensure Fetcher implements taxdoc.Fetcher at compile time.
var _ taxdoc.Fetcher = (*Fetcher)(nil)

// Defaults for Fetcher.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultWaitTimeout  = 5 * time.Second
	DefaultWaitSelector = "#cntnWrap_html"
)

// Fetcher retrieves rendered HTML using a managed browser.
// Document pages fill their content container from script after load, so
// Fetch waits for the container before reading the DOM.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	waitSelector string
	waitTimeout  time.Duration
	managerOpts  []ManagerOption
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds the whole navigation of one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.fetchTimeout = d }
}

// WithWaitSelector sets the element to wait for after load. An empty
// selector disables waiting.
func WithWaitSelector(selector string, timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
		f.waitTimeout = timeout
	}
}

// WithBrowserOptions configures the underlying BrowserManager.
func WithBrowserOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) { f.managerOpts = append(f.managerOpts, opts...) }
}

// NewFetcher launches a headless browser.
// Close must be called when the Fetcher is no longer needed.
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		waitSelector: DefaultWaitSelector,
		waitTimeout:  DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	m, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = m
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.manager.Closed() {
		return "", taxdoc.Errorf(taxdoc.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", contextError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextError(ctx, err)
	}
	f.waitForContent(page)

	html, err := page.HTML()
	if err != nil {
		return "", contextError(ctx, err)
	}
	return html, nil
}

// waitForContent waits for the content container. Pages without one are
// returned as they are, so a timeout here is not an error.
func (f *Fetcher) waitForContent(page *rod.Page) {
	if f.waitSelector == "" {
		return
	}
	_, _ = page.Timeout(f.waitTimeout).Element(f.waitSelector)
}

// contextError prefers the context error so callers can detect
// cancellation and deadlines with errors.Is.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
