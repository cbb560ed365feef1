package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	keyLastUpdated         = "lastUpdated"
	keySeasonActive        = "seasonActive"
	keyUpdateFrequency     = "updateFrequency"
	keyCurrentTournament   = "currentTournament"
	keyUpcomingTournaments = "upcomingTournaments"
	keySeasons             = "seasons"

	// lastUpdatedLayout matches ISO-8601 with millisecond precision in UTC.
	lastUpdatedLayout = "2006-01-02T15:04:05.000Z07:00"
)

// MarshalJSON writes the modelled fields plus any preserved unknown fields.
func (d DomainState) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+4)
	for k, v := range d.extra {
		out[k] = v
	}
	upcoming := d.UpcomingTournaments
	if upcoming == nil {
		upcoming = []Tournament{}
	}
	seasons := d.Seasons
	if seasons == nil {
		seasons = map[string]SeasonEntry{}
	}
	out[keySeasonActive] = d.SeasonActive
	if d.UpdateFrequency != "" {
		out[keyUpdateFrequency] = d.UpdateFrequency
	}
	out[keyCurrentTournament] = d.CurrentTournament
	out[keyUpcomingTournaments] = upcoming
	out[keySeasons] = seasons
	return json.Marshal(out)
}

// UnmarshalJSON reads the modelled fields and keeps the rest verbatim.
func (d *DomainState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	state := NewDomainState()
	for key, value := range raw {
		var err error
		switch key {
		case keySeasonActive:
			err = json.Unmarshal(value, &state.SeasonActive)
		case keyUpdateFrequency:
			err = json.Unmarshal(value, &state.UpdateFrequency)
		case keyCurrentTournament:
			err = json.Unmarshal(value, &state.CurrentTournament)
		case keyUpcomingTournaments:
			err = json.Unmarshal(value, &state.UpcomingTournaments)
		case keySeasons:
			err = json.Unmarshal(value, &state.Seasons)
		default:
			if state.extra == nil {
				state.extra = map[string]json.RawMessage{}
			}
			state.extra[key] = value
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	if state.UpcomingTournaments == nil {
		state.UpcomingTournaments = []Tournament{}
	}
	if state.Seasons == nil {
		state.Seasons = map[string]SeasonEntry{}
	}
	*d = *state
	return nil
}

// MarshalJSON flattens domains to top-level keys next to lastUpdated.
func (doc Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(doc.Domains)+len(doc.extra)+1)
	for k, v := range doc.extra {
		out[k] = v
	}
	for name, state := range doc.Domains {
		if state == nil {
			state = NewDomainState()
		}
		out[name] = state
	}
	if !doc.LastUpdated.IsZero() {
		out[keyLastUpdated] = doc.LastUpdated.UTC().Format(lastUpdatedLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON treats a top-level object as a domain when it carries at
// least one modelled domain key; everything else is kept verbatim.
func (doc *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := NewDocument()
	for key, value := range raw {
		if key == keyLastUpdated {
			var stamp string
			if err := json.Unmarshal(value, &stamp); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if stamp != "" {
				t, err := time.Parse(time.RFC3339Nano, stamp)
				if err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
				parsed.LastUpdated = t
			}
			continue
		}
		if trimmed := bytes.TrimSpace(value); isDomainObject(trimmed) {
			state := NewDomainState()
			if err := json.Unmarshal(trimmed, state); err != nil {
				return fmt.Errorf("domain %s: %w", key, err)
			}
			parsed.Domains[key] = state
			continue
		}
		if parsed.extra == nil {
			parsed.extra = map[string]json.RawMessage{}
		}
		parsed.extra[key] = value
	}
	*doc = *parsed
	return nil
}

var domainKeys = []string{keySeasonActive, keyCurrentTournament, keyUpcomingTournaments, keySeasons}

func isDomainObject(value []byte) bool {
	if len(value) == 0 || value[0] != '{' {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(value, &fields); err != nil {
		return false
	}
	for _, key := range domainKeys {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}
