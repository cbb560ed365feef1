// Package scrape fetches pages (plain HTTP or a headless browser), pulls text
// out of them with CSS selectors and regular expressions, and writes the
// result together with the domain's D-day state.
package scrape

import (
	"context"
	"errors"
	"time"
)

// ErrFetch marks a page that could not be retrieved or did not contain the awaited element.
var ErrFetch = errors.New("page fetch failed")

// WaitPolicy says when a page counts as loaded.
type WaitPolicy struct {
	// Selector must match at least one element; empty accepts any page.
	Selector string
	// Timeout bounds the whole fetch; zero uses the fetcher default.
	Timeout time.Duration
	// Settle is an extra pause after Selector appears, for pages that keep rendering.
	Settle time.Duration
}

// Page is rendered page content.
type Page struct {
	URL       string
	HTML      string
	Status    int
	Source    string
	FetchedAt time.Time
}

// Fetcher returns the rendered content of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string, wait WaitPolicy) (Page, error)
	Name() string
}

func withTimeout(ctx context.Context, wait WaitPolicy, fallback time.Duration) (context.Context, context.CancelFunc) {
	timeout := wait.Timeout
	if timeout <= 0 {
		timeout = fallback
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
