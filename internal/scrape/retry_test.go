package scrape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sportsboard/internal/metrics"
)

func TestRetryingFetcherRetriesUntilSuccess(t *testing.T) {
	inner := &stubFetcher{errs: []error{errBoom, errBoom}, pages: []Page{{HTML: "ok"}}}
	rec := metrics.NewRecorder()
	f := NewRetryingFetcher(inner, nil, rec, 2, time.Millisecond)

	page, err := f.Fetch(context.Background(), "http://example.test", WaitPolicy{})
	require.NoError(t, err)
	require.Equal(t, "ok", page.HTML)
	require.Equal(t, 3, inner.calls)

	snap := rec.Snapshot("stub")
	require.Equal(t, 3, snap.Calls)
	require.Equal(t, 2, snap.Errors)
	require.Equal(t, 2, snap.Retries)
}

func TestRetryingFetcherGivesUp(t *testing.T) {
	inner := &stubFetcher{errs: []error{errBoom, errBoom, errBoom}}
	f := NewRetryingFetcher(inner, nil, nil, 1, time.Millisecond)

	_, err := f.Fetch(context.Background(), "http://example.test", WaitPolicy{})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 2, inner.calls)
	require.Equal(t, "stub", f.Name())
}

func TestRetryingFetcherZeroRetriesIsSingleAttempt(t *testing.T) {
	inner := &stubFetcher{errs: []error{errBoom}}
	f := NewRetryingFetcher(inner, nil, nil, 0, 0)

	_, err := f.Fetch(context.Background(), "http://example.test", WaitPolicy{})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 1, inner.calls)
}

func TestRetryingFetcherStopsOnCancel(t *testing.T) {
	inner := &stubFetcher{errs: []error{errBoom, errBoom, errBoom}}
	f := NewRetryingFetcher(inner, nil, nil, 2, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := f.Fetch(ctx, "http://example.test", WaitPolicy{})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, inner.calls)
}
