package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBrowserFetcherDefaults(t *testing.T) {
	f := NewBrowserFetcher(BrowserOptions{})
	require.Equal(t, SourceBrowser, f.Name())
	require.Equal(t, defaultBrowserTimeout, f.opts.Timeout)
	require.NotEmpty(t, f.allocatorOptions())

	var html string
	require.Len(t, f.actions("http://example.test", WaitPolicy{}, &html), 3)
	require.Len(t, f.actions("http://example.test", WaitPolicy{Selector: "table", Settle: time.Second}, &html), 4)
}

// Runs only where a Chrome binary is available.
func TestBrowserFetcherRendersScriptContent(t *testing.T) {
	chrome := os.Getenv("SPORTSBOARD_TEST_CHROME")
	if chrome == "" {
		t.Skip("SPORTSBOARD_TEST_CHROME not set")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="app"></div>
<script>document.getElementById('app').innerHTML = '<span class="d">rendered</span>';</script>
</body></html>`))
	}))
	defer srv.Close()

	f := NewBrowserFetcher(BrowserOptions{ExecPath: chrome, Timeout: 30 * time.Second})
	page, err := f.Fetch(context.Background(), srv.URL, WaitPolicy{Selector: "span.d"})
	require.NoError(t, err)
	require.Contains(t, page.HTML, "rendered")
}
