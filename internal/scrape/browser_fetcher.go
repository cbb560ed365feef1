package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	SourceBrowser         = "browser"
	defaultBrowserTimeout = 60 * time.Second
)

// BrowserOptions configures BrowserFetcher.
type BrowserOptions struct {
	// ExecPath points at a Chrome/Chromium binary; empty lets chromedp search PATH.
	ExecPath  string
	Timeout   time.Duration
	UserAgent string
}

// BrowserFetcher renders pages in headless Chrome, for sites that build their
// content with JavaScript.
type BrowserFetcher struct {
	opts BrowserOptions
	now  func() time.Time
}

// NewBrowserFetcher constructs a BrowserFetcher. Chrome is launched per fetch.
func NewBrowserFetcher(opts BrowserOptions) *BrowserFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultBrowserTimeout
	}
	return &BrowserFetcher{opts: opts, now: time.Now}
}

func (f *BrowserFetcher) Name() string { return SourceBrowser }

func (f *BrowserFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
	)
	if f.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(f.opts.ExecPath))
	}
	if f.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.opts.UserAgent))
	}
	return opts
}

func (f *BrowserFetcher) actions(url string, wait WaitPolicy, html *string) []chromedp.Action {
	actions := []chromedp.Action{chromedp.Navigate(url)}
	if wait.Selector != "" {
		actions = append(actions, chromedp.WaitVisible(wait.Selector, chromedp.ByQuery))
	} else {
		actions = append(actions, chromedp.WaitReady("body", chromedp.ByQuery))
	}
	if wait.Settle > 0 {
		actions = append(actions, chromedp.Sleep(wait.Settle))
	}
	return append(actions, chromedp.OuterHTML("html", html, chromedp.ByQuery))
}

// Fetch navigates to url, waits per wait and returns the rendered document.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string, wait WaitPolicy) (Page, error) {
	ctx, cancel := withTimeout(ctx, wait, f.opts.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	if err := chromedp.Run(browserCtx, f.actions(url, wait, &html)...); err != nil {
		return Page{}, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	return Page{
		URL:       url,
		HTML:      html,
		Status:    200,
		Source:    SourceBrowser,
		FetchedAt: f.now().UTC(),
	}, nil
}
