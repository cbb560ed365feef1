// Package store holds the persisted season configuration document, the
// per-domain window repository built on top of it, and the persisters that
// load and save it.
package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/domain/season"
)

// Update frequency hints published alongside each tournament.
const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
)

// Tournament is a window stored in currentTournament / upcomingTournaments.
type Tournament struct {
	Name            string `json:"name"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	UpdateFrequency string `json:"updateFrequency"`
}

// Window converts the entry into a validated season.Window.
func (t Tournament) Window() (season.Window, error) {
	w, err := season.NewWindow(t.Name, t.StartDate, t.EndDate)
	if err != nil {
		return season.Window{}, err
	}
	w.Metadata = map[string]string{"updateFrequency": t.UpdateFrequency}
	return w, nil
}

// SeasonEntry is a keyed season window.
type SeasonEntry struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Confirmed bool   `json:"confirmed"`
}

// DomainState is the persisted state for one domain (a sport or event family).
type DomainState struct {
	SeasonActive        bool
	UpdateFrequency     string
	CurrentTournament   *Tournament
	UpcomingTournaments []Tournament
	Seasons             map[string]SeasonEntry

	// extra keeps fields this package does not model so they survive a save.
	extra map[string]json.RawMessage
}

// NewDomainState returns an empty, inactive domain.
func NewDomainState() *DomainState {
	return &DomainState{
		UpcomingTournaments: []Tournament{},
		Seasons:             map[string]SeasonEntry{},
	}
}

// Clone returns a deep copy.
func (d *DomainState) Clone() *DomainState {
	if d == nil {
		return nil
	}
	out := &DomainState{
		SeasonActive:        d.SeasonActive,
		UpdateFrequency:     d.UpdateFrequency,
		UpcomingTournaments: append([]Tournament{}, d.UpcomingTournaments...),
		Seasons:             make(map[string]SeasonEntry, len(d.Seasons)),
	}
	if d.CurrentTournament != nil {
		cur := *d.CurrentTournament
		out.CurrentTournament = &cur
	}
	for k, v := range d.Seasons {
		out.Seasons[k] = v
	}
	if d.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(d.extra))
		for k, v := range d.extra {
			out.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// SeasonKeys returns season keys ordered by start date, then key.
func (d *DomainState) SeasonKeys() []string {
	keys := make([]string, 0, len(d.Seasons))
	for k := range d.Seasons {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := d.Seasons[keys[i]], d.Seasons[keys[j]]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Document is the whole persisted configuration: one DomainState per domain
// plus the lastUpdated stamp written on every save.
type Document struct {
	Domains     map[string]*DomainState
	LastUpdated time.Time

	extra map[string]json.RawMessage
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Domains: map[string]*DomainState{}}
}

// Clone returns a deep copy.
func (doc *Document) Clone() *Document {
	if doc == nil {
		return nil
	}
	out := &Document{
		Domains:     make(map[string]*DomainState, len(doc.Domains)),
		LastUpdated: doc.LastUpdated,
	}
	for name, state := range doc.Domains {
		out.Domains[name] = state.Clone()
	}
	if doc.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(doc.extra))
		for k, v := range doc.extra {
			out.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// DomainNames returns the persisted domain names in sorted order.
func (doc *Document) DomainNames() []string {
	names := make([]string, 0, len(doc.Domains))
	for name := range doc.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
