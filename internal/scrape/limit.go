package scrape

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/sportsboard/internal/logging"
)

// rateLimitedFetcher spaces calls to next by at least one interval so a
// retry loop cannot hammer the upstream site.
type rateLimitedFetcher struct {
	next    Fetcher
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedFetcher returns next unchanged when interval <= 0.
func NewRateLimitedFetcher(next Fetcher, interval time.Duration, logger *slog.Logger) Fetcher {
	if interval <= 0 {
		return next
	}
	return &rateLimitedFetcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

func (f *rateLimitedFetcher) Name() string { return f.next.Name() }

func (f *rateLimitedFetcher) Fetch(ctx context.Context, url string, wait WaitPolicy) (Page, error) {
	started := time.Now()
	if err := f.limiter.Wait(ctx); err != nil {
		return Page{}, err
	}
	if waited := time.Since(started); waited >= time.Millisecond {
		logging.FromContext(ctx, f.logger).Debug("fetch delayed by rate limit",
			slog.String(logging.FieldURL, url),
			slog.Int64(logging.FieldDurationMS, waited.Milliseconds()),
		)
	}
	return f.next.Fetch(ctx, url, wait)
}
