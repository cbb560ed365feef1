// Package seasons implements the season/tournament commands: start, end and
// add mutate a domain's windows, status reports them, and auto applies the
// daily boundary check.
package seasons

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/domain/season"
	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/metrics"
	"github.com/preston-bernstein/sportsboard/internal/store"
	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// Actions reported by mutating operations.
const (
	ActionStarted       = "started"
	ActionEnded         = "ended"
	ActionAdded         = "added"
	ActionExpired       = metrics.ActionExpired
	ActionPromoted      = metrics.ActionPromoted
	ActionNoop          = metrics.ActionNoop
	ActionSeasonSet     = "season_set"
	ActionSeasonRemoved = "season_removed"
)

var domainName = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

// Result describes one applied (or skipped) mutation.
type Result struct {
	Domain     string            `json:"domain"`
	Action     string            `json:"action"`
	Changed    bool              `json:"changed"`
	Tournament *store.Tournament `json:"tournament,omitempty"`
	Report     Report            `json:"report"`
}

// Service runs season commands against a Store.
type Service struct {
	store   store.Store
	catalog *store.Catalog
	now     func() time.Time
	loc     *time.Location
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Option customises a Service.
type Option func(*Service)

// WithCatalog overrides the built-in defaults.
func WithCatalog(c *store.Catalog) Option { return func(s *Service) { s.catalog = c } }

// WithClock sets the reference instant source.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLocation sets the zone used to turn the reference instant into a date.
func WithLocation(loc *time.Location) Option { return func(s *Service) { s.loc = loc } }

// WithLogger sets the fallback logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// WithMetrics sets the recorder for boundary checks.
func WithMetrics(r *metrics.Recorder) Option { return func(s *Service) { s.metrics = r } }

// NewService constructs a Service over st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		now:   time.Now,
		loc:   timeutil.LocationOrDefault(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = store.MustDefaultCatalog()
	}
	return s
}

// Today is the reference date in the service's zone.
func (s *Service) Today() time.Time {
	return timeutil.DateOf(s.now(), s.loc)
}

// Domains lists every stored or built-in domain.
func (s *Service) Domains(ctx context.Context) []string {
	return s.repository(s.store.Load(ctx)).Domains()
}

// Start makes name the current window of domain immediately.
func (s *Service) Start(ctx context.Context, domain, name, start, end string) (Result, error) {
	t, err := s.tournament(domain, name, start, end)
	if err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, domain, ActionStarted, func(repo *store.Repository) (*store.Tournament, bool, error) {
		state := repo.Mutable(domain)
		state.Unqueue(t)
		state.Activate(t)
		current := *state.CurrentTournament
		return &current, true, nil
	})
}

// End clears the current window of domain. It returns ErrNoActiveWindow when
// nothing is active; the store is left untouched in that case.
func (s *Service) End(ctx context.Context, domain string) (Result, error) {
	if err := validDomain(domain); err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, domain, ActionEnded, func(repo *store.Repository) (*store.Tournament, bool, error) {
		if !repo.Known(domain) {
			return nil, false, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
		}
		state, _ := repo.State(domain)
		if !state.SeasonActive && state.CurrentTournament == nil {
			return nil, false, fmt.Errorf("%w: %s", ErrNoActiveWindow, domain)
		}
		prev := repo.Mutable(domain).Deactivate(s.catalog.IdleFrequency(domain))
		return prev, true, nil
	})
}

// Add appends a window to the upcoming queue of domain without activating it.
func (s *Service) Add(ctx context.Context, domain, name, start, end string) (Result, error) {
	t, err := s.tournament(domain, name, start, end)
	if err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, domain, ActionAdded, func(repo *store.Repository) (*store.Tournament, bool, error) {
		state := repo.Mutable(domain)
		state.Enqueue(t, s.catalog.IdleFrequency(domain))
		added := state.UpcomingTournaments[len(state.UpcomingTournaments)-1]
		return &added, true, nil
	})
}

// SetSeason validates and upserts season key of domain.
func (s *Service) SetSeason(ctx context.Context, domain, key, start, end string, confirmed bool) (Result, error) {
	if err := validDomain(domain); err != nil {
		return Result{}, err
	}
	w, err := season.NewWindow(key, start, end)
	if err != nil {
		return Result{}, err
	}
	w.Metadata = map[string]string{store.MetaConfirmed: fmt.Sprint(confirmed)}
	return s.mutate(ctx, domain, ActionSeasonSet, func(repo *store.Repository) (*store.Tournament, bool, error) {
		if err := repo.Upsert(domain, key, w); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	})
}

// RemoveSeason deletes season key of domain.
func (s *Service) RemoveSeason(ctx context.Context, domain, key string) (Result, error) {
	if err := validDomain(domain); err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, domain, ActionSeasonRemoved, func(repo *store.Repository) (*store.Tournament, bool, error) {
		if !repo.Remove(domain, key) {
			return nil, false, fmt.Errorf("%w: %s/%s", ErrUnknownSeason, domain, key)
		}
		return nil, true, nil
	})
}

// Status reports domain without writing anything.
func (s *Service) Status(ctx context.Context, domain string) (Report, error) {
	doc := s.store.Load(ctx)
	repo := s.repository(doc)
	if !repo.Known(domain) {
		return Report{}, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	return s.report(repo, domain), nil
}

// StatusAll reports every domain in name order.
func (s *Service) StatusAll(ctx context.Context) []Report {
	repo := s.repository(s.store.Load(ctx))
	names := repo.Domains()
	reports := make([]Report, 0, len(names))
	for _, name := range names {
		reports = append(reports, s.report(repo, name))
	}
	return reports
}

// Label returns the D-day state of domain, for embedding in scraped output.
func (s *Service) Label(ctx context.Context, domain string) (StateView, error) {
	report, err := s.Status(ctx, domain)
	if err != nil {
		return StateView{}, err
	}
	return report.State, nil
}

func (s *Service) mutate(ctx context.Context, domain, action string, fn func(*store.Repository) (*store.Tournament, bool, error)) (Result, error) {
	var (
		repo    *store.Repository
		subject *store.Tournament
	)
	_, changed, err := store.Update(ctx, s.store, func(doc *store.Document) (bool, error) {
		repo = s.repository(doc)
		t, changed, err := fn(repo)
		subject = t
		return changed, err
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Domain:     domain,
		Action:     action,
		Changed:    changed,
		Tournament: subject,
		Report:     s.report(repo, domain),
	}
	logging.Info(s.log(ctx), "season command applied",
		slog.String(logging.FieldDomain, domain),
		slog.String(logging.FieldAction, action),
		slog.String(logging.FieldLabel, result.Report.State.Label),
	)
	return result, nil
}

func (s *Service) tournament(domain, name, start, end string) (store.Tournament, error) {
	if err := validDomain(domain); err != nil {
		return store.Tournament{}, err
	}
	t := store.Tournament{Name: name, StartDate: start, EndDate: end}
	if name == "" {
		return store.Tournament{}, fmt.Errorf("%w: name required", season.ErrInvalidWindow)
	}
	if _, err := t.Window(); err != nil {
		return store.Tournament{}, err
	}
	return t, nil
}

func (s *Service) repository(doc *store.Document) *store.Repository {
	return store.NewRepository(doc, s.catalog, s.Today())
}

func (s *Service) report(repo *store.Repository, domain string) Report {
	state, persisted := repo.State(domain)
	return buildReport(domain, state, persisted, repo.Document().LastUpdated, s.catalog.IdleFrequency(domain), s.Today())
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

func validDomain(domain string) error {
	if !domainName.MatchString(domain) {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	return nil
}
