package scrape

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/domain/season"
)

type stubFetcher struct {
	mu    sync.Mutex
	pages []Page
	errs  []error
	calls int
	waits []WaitPolicy
}

func (f *stubFetcher) Name() string { return "stub" }

func (f *stubFetcher) Fetch(ctx context.Context, url string, wait WaitPolicy) (Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.waits = append(f.waits, wait)
	if i < len(f.errs) && f.errs[i] != nil {
		return Page{}, f.errs[i]
	}
	if len(f.pages) == 0 {
		return Page{URL: url}, nil
	}
	if i >= len(f.pages) {
		i = len(f.pages) - 1
	}
	return f.pages[i], nil
}

type stubLabeler struct {
	state seasons.StateView
	err   error
}

func (l stubLabeler) Label(ctx context.Context, domain string) (seasons.StateView, error) {
	return l.state, l.err
}

var errBoom = errors.New("boom")

func ongoingLabel() seasons.StateView {
	return seasons.StateView{Kind: season.KindOngoing, Window: "Malaysia Open", OffsetDays: 2, Label: "D+2"}
}
