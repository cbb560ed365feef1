package scrape

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/metrics"
)

const defaultBackoff = 500 * time.Millisecond

type backoffFunc func(attempt int) time.Duration

// retryingFetcher wraps a Fetcher with linear backoff retries and records
// every attempt.
type retryingFetcher struct {
	inner       Fetcher
	logger      *slog.Logger
	metrics     *metrics.Recorder
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingFetcher retries inner up to retries extra times. retries <= 0
// means a single attempt; backoff <= 0 uses the default.
func NewRetryingFetcher(inner Fetcher, logger *slog.Logger, rec *metrics.Recorder, retries int, backoff time.Duration) Fetcher {
	if retries < 0 {
		retries = 0
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingFetcher{
		inner:       inner,
		logger:      logger,
		metrics:     rec,
		maxAttempts: retries + 1,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingFetcher) Name() string { return r.inner.Name() }

func (r *retryingFetcher) Fetch(ctx context.Context, url string, wait WaitPolicy) (Page, error) {
	var lastErr error
	source := r.inner.Name()

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		started := time.Now()
		page, err := r.inner.Fetch(ctx, url, wait)
		r.metrics.RecordFetch(source, time.Since(started), err)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if attempt == r.maxAttempts || errors.Is(err, context.Canceled) {
			break
		}

		delay := r.backoffFn(attempt)
		r.metrics.RecordRetry(source, delay)
		r.log(ctx).Warn("page fetch retry",
			slog.String(logging.FieldURL, url),
			slog.String(logging.FieldSource, source),
			slog.Int(logging.FieldAttempt, attempt),
			"max_attempts", r.maxAttempts,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return Page{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	logging.Warn(r.log(ctx), "page fetch failed",
		slog.String(logging.FieldURL, url),
		slog.String(logging.FieldSource, source),
		"attempts", r.maxAttempts,
		"error", lastErr,
	)
	return Page{}, lastErr
}

func (r *retryingFetcher) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, r.logger)
}
