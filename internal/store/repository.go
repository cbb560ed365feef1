package store

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/domain/season"
	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// Window metadata keys set by the repository.
const (
	MetaSource    = "source"
	MetaKey       = "key"
	MetaConfirmed = "confirmed"
	MetaFrequency = "updateFrequency"

	SourceCurrent  = "current"
	SourceUpcoming = "upcoming"
	SourceSeason   = "season"
)

// Repository resolves the windows of each domain from a Document, falling back
// to the Catalog for domains the document does not hold yet.
type Repository struct {
	doc     *Document
	catalog *Catalog
	today   time.Time
}

// NewRepository wraps doc. today anchors the catalog fallback.
func NewRepository(doc *Document, catalog *Catalog, today time.Time) *Repository {
	if doc == nil {
		doc = NewDocument()
	}
	if doc.Domains == nil {
		doc.Domains = map[string]*DomainState{}
	}
	return &Repository{doc: doc, catalog: catalog, today: timeutil.DateOf(today, nil)}
}

// Document exposes the wrapped document.
func (r *Repository) Document() *Document { return r.doc }

// Domains lists every domain known to the document or the catalog.
func (r *Repository) Domains() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, name := range append(r.doc.DomainNames(), r.catalog.Names()...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether domain exists in the document or the catalog.
func (r *Repository) Known(domain string) bool {
	_, ok := r.doc.Domains[domain]
	return ok || r.catalog.Has(domain)
}

// State returns the persisted state for domain, or a detached catalog
// fallback when the document has none. persisted reports which one it is.
func (r *Repository) State(domain string) (state *DomainState, persisted bool) {
	if s, ok := r.doc.Domains[domain]; ok && s != nil {
		return s, true
	}
	return r.catalog.State(domain, r.today), false
}

// Mutable returns the persisted state for domain, seeding it from the catalog
// the first time the domain is written.
func (r *Repository) Mutable(domain string) *DomainState {
	if s, ok := r.doc.Domains[domain]; ok && s != nil {
		return s
	}
	s := r.catalog.State(domain, r.today)
	r.doc.Domains[domain] = s
	return s
}

// Get returns the valid windows of domain in evaluation order: the current
// tournament, the upcoming queue in queue order, then seasons by start date.
func (r *Repository) Get(domain string) []season.Window {
	windows, _ := r.Windows(domain)
	return windows
}

// Windows is Get but also reports entries that failed validation.
func (r *Repository) Windows(domain string) ([]season.Window, error) {
	state, _ := r.State(domain)
	return state.Windows()
}

// Upsert validates w and stores it as season key of domain.
func (r *Repository) Upsert(domain, key string, w season.Window) error {
	if key == "" {
		return fmt.Errorf("%w: season key required", season.ErrInvalidWindow)
	}
	if err := w.Validate(); err != nil {
		return err
	}
	state := r.Mutable(domain)
	state.Seasons[key] = SeasonEntry{
		Start:     w.StartDate(),
		End:       w.EndDate(),
		Confirmed: w.Meta(MetaConfirmed) == "true",
	}
	return nil
}

// Remove deletes season key from domain. It reports whether anything was removed.
func (r *Repository) Remove(domain, key string) bool {
	state, ok := r.doc.Domains[domain]
	if !ok || state == nil {
		return false
	}
	if _, ok := state.Seasons[key]; !ok {
		return false
	}
	delete(state.Seasons, key)
	return true
}

// Windows converts the state into evaluation-ordered windows: tournaments
// first, then seasons. Invalid entries are skipped and reported together in
// the returned error.
func (d *DomainState) Windows() ([]season.Window, error) {
	tournaments, terr := d.TournamentWindows()
	seasons, serr := d.SeasonWindows()
	return append(tournaments, seasons...), errors.Join(terr, serr)
}

// TournamentWindows returns the current tournament followed by the queue.
func (d *DomainState) TournamentWindows() ([]season.Window, error) {
	if d == nil {
		return nil, nil
	}
	var (
		windows []season.Window
		errs    []error
	)
	if d.CurrentTournament != nil {
		if w, err := d.CurrentTournament.Window(); err != nil {
			errs = append(errs, fmt.Errorf("current tournament: %w", err))
		} else {
			w.Metadata[MetaSource] = SourceCurrent
			windows = append(windows, w)
		}
	}
	for i, t := range d.UpcomingTournaments {
		w, err := t.Window()
		if err != nil {
			errs = append(errs, fmt.Errorf("upcoming tournament %d: %w", i, err))
			continue
		}
		w.Metadata[MetaSource] = SourceUpcoming
		windows = append(windows, w)
	}
	return windows, errors.Join(errs...)
}

// SeasonWindows returns the keyed seasons ordered by start date, then key.
func (d *DomainState) SeasonWindows() ([]season.Window, error) {
	if d == nil {
		return nil, nil
	}
	var (
		windows []season.Window
		errs    []error
	)
	for _, key := range d.SeasonKeys() {
		entry := d.Seasons[key]
		w, err := season.NewWindow(key, entry.Start, entry.End)
		if err != nil {
			errs = append(errs, fmt.Errorf("season %s: %w", key, err))
			continue
		}
		w.Metadata = map[string]string{
			MetaSource:    SourceSeason,
			MetaKey:       key,
			MetaConfirmed: strconv.FormatBool(entry.Confirmed),
		}
		windows = append(windows, w)
	}
	return windows, errors.Join(errs...)
}
