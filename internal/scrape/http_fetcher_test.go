package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const rankingHTML = `<html><body>
<table class="ranking">
  <tr class="row"><td>1</td><td>  An   Se-young </td></tr>
  <tr class="row"><td>2</td><td>Wang Zhiyi</td></tr>
</table>
</body></html>`

func TestHTTPFetcherReturnsBody(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(rankingHTML))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{Timeout: time.Second, UserAgent: "sportsboard-test"})
	page, err := f.Fetch(context.Background(), srv.URL, WaitPolicy{Selector: "table.ranking"})
	require.NoError(t, err)
	require.Equal(t, 200, page.Status)
	require.Equal(t, SourceHTTP, page.Source)
	require.Contains(t, page.HTML, "Wang Zhiyi")
	require.Equal(t, "sportsboard-test", gotAgent)
}

func TestHTTPFetcherErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(HTTPOptions{}).Fetch(context.Background(), srv.URL, WaitPolicy{})
	require.True(t, errors.Is(err, ErrFetch))
	require.Contains(t, err.Error(), "503")
}

func TestHTTPFetcherMissingSelector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>maintenance</p></body></html>"))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(HTTPOptions{}).Fetch(context.Background(), srv.URL, WaitPolicy{Selector: "table.ranking"})
	require.ErrorIs(t, err, ErrFetch)
}

func TestHTTPFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPFetcher(HTTPOptions{}).Fetch(context.Background(), srv.URL, WaitPolicy{Timeout: 50 * time.Millisecond})
	require.ErrorIs(t, err, ErrFetch)
}
