package scrape

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	SourceHTTP         = "http"
	defaultHTTPTimeout = 30 * time.Second
)

// HTTPOptions configures HTTPFetcher.
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
}

// HTTPFetcher fetches server-rendered pages with a plain GET.
type HTTPFetcher struct {
	client  *resty.Client
	timeout time.Duration
	now     func() time.Time
}

// NewHTTPFetcher constructs an HTTPFetcher.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultHTTPTimeout
	}
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	return &HTTPFetcher{client: client, timeout: opts.Timeout, now: time.Now}
}

func (f *HTTPFetcher) Name() string { return SourceHTTP }

// Fetch GETs url. Non-2xx responses and a missing wait selector are ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, wait WaitPolicy) (Page, error) {
	ctx, cancel := withTimeout(ctx, wait, f.timeout)
	defer cancel()

	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	if res.IsError() {
		return Page{}, fmt.Errorf("%w: %s returned %d", ErrFetch, url, res.StatusCode())
	}

	page := Page{
		URL:       url,
		HTML:      string(res.Body()),
		Status:    res.StatusCode(),
		Source:    SourceHTTP,
		FetchedAt: f.now().UTC(),
	}
	if wait.Selector != "" {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
		if err != nil {
			return Page{}, fmt.Errorf("%w: parse %s: %w", ErrFetch, url, err)
		}
		if doc.Find(wait.Selector).Length() == 0 {
			return Page{}, fmt.Errorf("%w: %s has no %q", ErrFetch, url, wait.Selector)
		}
	}
	return page, nil
}
