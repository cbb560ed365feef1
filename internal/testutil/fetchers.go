package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/sportsboard/internal/scrape"
)

// StubFetcher returns HTML (or Err) for every fetch and counts calls.
type StubFetcher struct {
	mu    sync.Mutex
	HTML  string
	Err   error
	URLs  []string
	Label string
}

func (f *StubFetcher) Name() string {
	if f.Label == "" {
		return "stub"
	}
	return f.Label
}

func (f *StubFetcher) Fetch(ctx context.Context, url string, wait scrape.WaitPolicy) (scrape.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.URLs = append(f.URLs, url)
	if f.Err != nil {
		return scrape.Page{}, f.Err
	}
	return scrape.Page{URL: url, HTML: f.HTML, Status: 200, Source: f.Name()}, nil
}

// Calls reports how many fetches were made.
func (f *StubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.URLs)
}
