package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	retries         int
	lastRetryDelay  time.Duration
	lastCallLatency time.Duration
}

type domainStats struct {
	checks  int
	errors  int
	actions map[string]int
}

// Recorder captures lightweight, in-memory metrics about page fetches and
// season boundary checks, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu      sync.Mutex
	sources map[string]*sourceStats
	domains map[string]*domainStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources: make(map[string]*sourceStats),
		domains: make(map[string]*domainStats),
		otel:    otel,
	}
}

// RecordFetch increments counters for a page fetch and stores the last observed latency.
func (r *Recorder) RecordFetch(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSource(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(source, duration, err)
	}
}

// RecordRetry tracks that a fetch is being retried after delay.
func (r *Recorder) RecordRetry(source string, delay time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSource(source)
	stats.retries++
	if delay > 0 {
		stats.lastRetryDelay = delay
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRetry(source, delay)
	}
}

// RecordBoundaryCheck counts one automatic boundary check for domain and its outcome.
func (r *Recorder) RecordBoundaryCheck(domain, action string, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureDomain(domain)
	stats.checks++
	if err != nil {
		stats.errors++
	} else if action != "" {
		stats.actions[action]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBoundaryCheck(domain, action, err)
	}
}

// Snapshot is a copy of the current stats for one fetch source.
type Snapshot struct {
	Calls           int
	Errors          int
	Retries         int
	LastRetryDelay  time.Duration
	LastCallLatency time.Duration
}

// Snapshot returns the stats for source.
func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Retries:         stats.retries,
		LastRetryDelay:  stats.lastRetryDelay,
		LastCallLatency: stats.lastCallLatency,
	}
}

// BoundarySnapshot is a copy of the boundary-check stats for one domain.
type BoundarySnapshot struct {
	Checks  int
	Errors  int
	Actions map[string]int
}

// Boundary returns the boundary-check stats for domain.
func (r *Recorder) Boundary(domain string) BoundarySnapshot {
	if r == nil {
		return BoundarySnapshot{Actions: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := BoundarySnapshot{Actions: map[string]int{}}
	stats, ok := r.domains[domain]
	if !ok || stats == nil {
		return out
	}
	out.Checks = stats.checks
	out.Errors = stats.errors
	for k, v := range stats.actions {
		out.Actions[k] = v
	}
	return out
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// callers hold r.mu
func (r *Recorder) ensureSource(source string) *sourceStats {
	stats, ok := r.sources[source]
	if !ok {
		stats = &sourceStats{}
		r.sources[source] = stats
	}
	return stats
}

// callers hold r.mu
func (r *Recorder) ensureDomain(domain string) *domainStats {
	stats, ok := r.domains[domain]
	if !ok {
		stats = &domainStats{actions: map[string]int{}}
		r.domains[domain] = stats
	}
	return stats
}
