package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/snapshots"
)

var (
	// ErrInvalidJob is returned before any fetch when a Job is malformed.
	ErrInvalidJob = errors.New("invalid scrape job")
	// ErrNoMatches means the page loaded but the selector/pattern found nothing.
	ErrNoMatches = errors.New("no matching content")
)

// Job statuses.
const (
	StatusWritten  = "written"
	StatusKept     = "kept"
	StatusFallback = "fallback"
)

// Job describes one page to scrape into one output file.
type Job struct {
	Domain   string
	URL      string
	Name     string
	Selector string
	Pattern  string
	Wait     WaitPolicy
}

func (j Job) validate() (*regexp.Regexp, error) {
	if j.Domain == "" || j.URL == "" || j.Selector == "" {
		return nil, fmt.Errorf("%w: domain, url and selector are required", ErrInvalidJob)
	}
	if !snapshots.ValidName(j.Name) {
		return nil, fmt.Errorf("%w: output name %q", ErrInvalidJob, j.Name)
	}
	if j.Pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(j.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern: %w", ErrInvalidJob, err)
	}
	return re, nil
}

// Output is the JSON document written for a Job.
type Output struct {
	RunID     string            `json:"runId"`
	Domain    string            `json:"domain"`
	Source    string            `json:"source"`
	Fetcher   string            `json:"fetcher"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Fallback  bool              `json:"fallback"`
	State     seasons.StateView `json:"state"`
	Items     []string          `json:"items"`
}

// Result reports what a run did. Err holds the fetch/extract failure behind a
// kept or fallback status.
type Result struct {
	RunID  string `json:"runId"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Items  int    `json:"items"`
	Label  string `json:"label"`
	Err    error  `json:"-"`
}

// Labeler supplies the D-day state of a domain.
type Labeler interface {
	Label(ctx context.Context, domain string) (seasons.StateView, error)
}

// Sink persists outputs.
type Sink interface {
	Write(name string, payload any, fallback bool) error
	Exists(name string) bool
}

// Runner executes Jobs.
type Runner struct {
	fetcher Fetcher
	sink    Sink
	labeler Labeler
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewRunner wires a Runner.
func NewRunner(fetcher Fetcher, sink Sink, labeler Labeler, logger *slog.Logger) *Runner {
	return &Runner{
		fetcher: fetcher,
		sink:    sink,
		labeler: labeler,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Run fetches job.URL, extracts items and writes <job.Name>.json. When the
// fetch or extraction fails the previous output is kept; with no previous
// output a fallback payload with no items is written instead. Only invalid
// jobs, unknown domains and sink failures are returned as errors.
func (r *Runner) Run(ctx context.Context, job Job) (Result, error) {
	pattern, err := job.validate()
	if err != nil {
		return Result{}, err
	}
	state, err := r.labeler.Label(ctx, job.Domain)
	if err != nil {
		return Result{}, err
	}

	runID := r.newID()
	logger := logging.FromContext(ctx, r.logger).With(
		slog.String(logging.FieldRunID, runID),
		slog.String(logging.FieldDomain, job.Domain),
		slog.String(logging.FieldURL, job.URL),
	)
	res := Result{RunID: runID, Name: job.Name, Label: state.Label}
	out := Output{
		RunID:   runID,
		Domain:  job.Domain,
		Source:  job.URL,
		Fetcher: r.fetcher.Name(),
		State:   state,
		Items:   []string{},
	}

	items, fetchErr := r.collect(ctx, job, pattern)
	if fetchErr == nil {
		out.Items = items
		out.FetchedAt = r.now().UTC()
		if err := r.sink.Write(job.Name, out, false); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", job.Name, err)
		}
		res.Status, res.Items = StatusWritten, len(items)
		logger.Info("scrape output written", slog.Int(logging.FieldCount, len(items)), slog.String(logging.FieldLabel, state.Label))
		return res, nil
	}

	res.Err = fetchErr
	if r.sink.Exists(job.Name) {
		res.Status = StatusKept
		logging.Warn(logger, "scrape failed, keeping previous output", "error", fetchErr)
		return res, nil
	}

	out.Fallback = true
	out.FetchedAt = r.now().UTC()
	if err := r.sink.Write(job.Name, out, true); err != nil {
		return Result{}, fmt.Errorf("write fallback %s: %w", job.Name, err)
	}
	res.Status = StatusFallback
	logging.Warn(logger, "scrape failed, wrote fallback output", "error", fetchErr)
	return res, nil
}

func (r *Runner) collect(ctx context.Context, job Job, pattern *regexp.Regexp) ([]string, error) {
	wait := job.Wait
	if wait.Selector == "" {
		wait.Selector = job.Selector
	}
	page, err := r.fetcher.Fetch(ctx, job.URL, wait)
	if err != nil {
		return nil, err
	}
	items, err := Extract(page.HTML, job.Selector, pattern)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrNoMatches, job.URL, job.Selector)
	}
	return items, nil
}
