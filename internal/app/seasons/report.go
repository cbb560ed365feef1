package seasons

import (
	"time"

	"github.com/preston-bernstein/sportsboard/internal/domain/season"
	"github.com/preston-bernstein/sportsboard/internal/store"
	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// TournamentView is a stored tournament plus its classification for today.
type TournamentView struct {
	Name            string      `json:"name"`
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
	UpdateFrequency string      `json:"updateFrequency"`
	Kind            season.Kind `json:"kind"`
}

// SeasonView is one keyed season.
type SeasonView struct {
	Key       string      `json:"key"`
	Start     string      `json:"start"`
	End       string      `json:"end"`
	Confirmed bool        `json:"confirmed"`
	Kind      season.Kind `json:"kind"`
}

// StateView is the evaluator result in display form.
type StateView struct {
	Kind       season.Kind `json:"kind"`
	Window     string      `json:"window,omitempty"`
	Source     string      `json:"source,omitempty"`
	StartDate  string      `json:"startDate,omitempty"`
	EndDate    string      `json:"endDate,omitempty"`
	OffsetDays int         `json:"offsetDays"`
	Label      string      `json:"label"`
}

// Report is what status prints for a domain. Building one never writes.
type Report struct {
	Domain          string           `json:"domain"`
	Today           string           `json:"today"`
	Persisted       bool             `json:"persisted"`
	SeasonActive    bool             `json:"seasonActive"`
	UpdateFrequency string           `json:"updateFrequency"`
	Current         *TournamentView  `json:"currentTournament"`
	Upcoming        []TournamentView `json:"upcomingTournaments"`
	Seasons         []SeasonView     `json:"seasons"`
	State           StateView        `json:"state"`
	LastUpdated     *time.Time       `json:"lastUpdated"`
	Warnings        []string         `json:"warnings,omitempty"`
}

func buildReport(domain string, state *store.DomainState, persisted bool, lastUpdated time.Time, idle string, today time.Time) Report {
	r := Report{
		Domain:          domain,
		Today:           timeutil.FormatDate(today),
		Persisted:       persisted,
		SeasonActive:    state.SeasonActive,
		UpdateFrequency: state.UpdateFrequency,
		Upcoming:        []TournamentView{},
		Seasons:         []SeasonView{},
	}
	if r.UpdateFrequency == "" {
		if state.SeasonActive {
			r.UpdateFrequency = store.FrequencyDaily
		} else {
			r.UpdateFrequency = idle
		}
	}
	if !lastUpdated.IsZero() {
		stamp := lastUpdated.UTC()
		r.LastUpdated = &stamp
	}

	if state.CurrentTournament != nil {
		view := tournamentView(*state.CurrentTournament, today)
		r.Current = &view
	}
	for _, t := range state.UpcomingTournaments {
		r.Upcoming = append(r.Upcoming, tournamentView(t, today))
	}
	for _, key := range state.SeasonKeys() {
		entry := state.Seasons[key]
		view := SeasonView{Key: key, Start: entry.Start, End: entry.End, Confirmed: entry.Confirmed}
		if w, err := season.NewWindow(key, entry.Start, entry.End); err == nil {
			view.Kind = season.Classify(today, w)
		}
		r.Seasons = append(r.Seasons, view)
	}

	// Tournaments label the day first; seasons only when no tournament is running or queued.
	tournaments, err := state.TournamentWindows()
	if err != nil {
		r.Warnings = append(r.Warnings, err.Error())
	}
	seasonWindows, err := state.SeasonWindows()
	if err != nil {
		r.Warnings = append(r.Warnings, err.Error())
	}
	r.State = stateView(season.EvaluateTiers(today, tournaments, seasonWindows))
	return r
}

func tournamentView(t store.Tournament, today time.Time) TournamentView {
	view := TournamentView{
		Name:            t.Name,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		UpdateFrequency: t.UpdateFrequency,
	}
	if w, err := t.Window(); err == nil {
		view.Kind = season.Classify(today, w)
	}
	return view
}

func stateView(st season.State) StateView {
	view := StateView{Kind: st.Kind, OffsetDays: st.OffsetDays, Label: st.Label}
	if st.Window != nil {
		view.Window = st.Window.Name
		view.Source = st.Window.Meta(store.MetaSource)
		view.StartDate = st.Window.StartDate()
		view.EndDate = st.Window.EndDate()
	}
	return view
}
