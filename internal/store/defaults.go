package store

import (
	_ "embed"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Catalog holds built-in defaults per domain.
type Catalog struct {
	Domains map[string]DomainDefaults `yaml:"domains"`
}

// DomainDefaults describes the fallback windows for one domain.
type DomainDefaults struct {
	IdleFrequency string           `yaml:"idleFrequency"`
	Season        *SeasonRange     `yaml:"season"`
	Tournaments   []TournamentSeed `yaml:"tournaments"`
}

// SeasonRange is a recurring MM-DD..MM-DD range.
type SeasonRange struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// TournamentSeed is a dated tournament shipped with the binary.
type TournamentSeed struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// DefaultCatalog parses the embedded defaults.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultsYAML)
}

// MustDefaultCatalog is DefaultCatalog for package-level wiring.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return c
}

// ParseCatalog decodes a YAML catalog and validates its ranges.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Domains == nil {
		c.Domains = map[string]DomainDefaults{}
	}
	for name, d := range c.Domains {
		if d.Season != nil {
			if _, _, err := d.Season.bounds(2000); err != nil {
				return nil, fmt.Errorf("domain %s: %w", name, err)
			}
		}
		for _, t := range d.Tournaments {
			if _, err := (Tournament{Name: t.Name, StartDate: t.Start, EndDate: t.End}).Window(); err != nil {
				return nil, fmt.Errorf("domain %s: %w", name, err)
			}
		}
	}
	return &c, nil
}

// Names returns the catalog's domain names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Domains))
	for name := range c.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the catalog knows the domain.
func (c *Catalog) Has(domain string) bool {
	if c == nil {
		return false
	}
	_, ok := c.Domains[domain]
	return ok
}

// IdleFrequency is the update hint used when no window is active.
func (c *Catalog) IdleFrequency(domain string) string {
	if c != nil {
		if d, ok := c.Domains[domain]; ok && d.IdleFrequency != "" {
			return d.IdleFrequency
		}
	}
	return FrequencyWeekly
}

// State builds the fallback DomainState for domain as of today: seasons for
// the previous, current and next year, and seed tournaments that have not
// ended yet.
func (c *Catalog) State(domain string, today time.Time) *DomainState {
	state := NewDomainState()
	if c == nil {
		return state
	}
	d, ok := c.Domains[domain]
	if !ok {
		return state
	}

	if d.Season != nil {
		year := today.Year()
		for y := year - 1; y <= year+1; y++ {
			start, end, err := d.Season.bounds(y)
			if err != nil {
				continue
			}
			state.Seasons[seasonKey(start, end)] = SeasonEntry{
				Start: timeutil.FormatDate(start),
				End:   timeutil.FormatDate(end),
			}
		}
	}

	idle := c.IdleFrequency(domain)
	for _, t := range d.Tournaments {
		entry := Tournament{Name: t.Name, StartDate: t.Start, EndDate: t.End, UpdateFrequency: idle}
		w, err := entry.Window()
		if err != nil || w.End.Before(timeutil.DateOf(today, nil)) {
			continue
		}
		state.UpcomingTournaments = append(state.UpcomingTournaments, entry)
	}
	sort.SliceStable(state.UpcomingTournaments, func(i, j int) bool {
		return state.UpcomingTournaments[i].StartDate < state.UpcomingTournaments[j].StartDate
	})
	return state
}

func (r SeasonRange) bounds(year int) (time.Time, time.Time, error) {
	start, err := monthDay(year, r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := monthDay(year, r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		end, err = monthDay(year+1, r.End)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func monthDay(year int, mmdd string) (time.Time, error) {
	return timeutil.ParseDate(fmt.Sprintf("%04d-%s", year, mmdd))
}

func seasonKey(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf("%d", start.Year())
	}
	return fmt.Sprintf("%d-%02d", start.Year(), end.Year()%100)
}
