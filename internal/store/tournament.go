package store

import (
	"time"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// Activate makes t the current tournament and switches the domain to daily updates.
func (d *DomainState) Activate(t Tournament) {
	t.UpdateFrequency = FrequencyDaily
	d.CurrentTournament = &t
	d.SeasonActive = true
	d.UpdateFrequency = FrequencyDaily
}

// Deactivate clears the current tournament and falls back to the idle hint.
// It returns the tournament that was active, if any.
func (d *DomainState) Deactivate(idle string) *Tournament {
	prev := d.CurrentTournament
	d.CurrentTournament = nil
	d.SeasonActive = false
	d.UpdateFrequency = idle
	return prev
}

// Enqueue appends t to the upcoming queue without activating it.
func (d *DomainState) Enqueue(t Tournament, idle string) {
	if t.UpdateFrequency == "" {
		t.UpdateFrequency = idle
	}
	d.UpcomingTournaments = append(d.UpcomingTournaments, t)
}

// ExpireCurrent deactivates the current tournament once today is strictly
// past its end date. It returns the expired tournament or nil.
func (d *DomainState) ExpireCurrent(today time.Time, idle string) *Tournament {
	if d.CurrentTournament == nil {
		return nil
	}
	w, err := d.CurrentTournament.Window()
	if err != nil {
		return nil
	}
	if !timeutil.DateOf(today, nil).After(w.End) {
		return nil
	}
	return d.Deactivate(idle)
}

// PromoteHead activates the head of the upcoming queue when there is no
// current tournament and today falls inside the head's window. A stray
// seasonActive flag without a current tournament does not block it. The head
// is removed from the queue. It returns the promoted tournament or nil.
func (d *DomainState) PromoteHead(today time.Time) *Tournament {
	if d.CurrentTournament != nil || len(d.UpcomingTournaments) == 0 {
		return nil
	}
	head := d.UpcomingTournaments[0]
	w, err := head.Window()
	if err != nil || !w.Contains(today) {
		return nil
	}
	d.UpcomingTournaments = append([]Tournament{}, d.UpcomingTournaments[1:]...)
	d.Activate(head)
	promoted := *d.CurrentTournament
	return &promoted
}

// Unqueue drops queued entries with t's name and dates. It returns how many were removed.
func (d *DomainState) Unqueue(t Tournament) int {
	kept := make([]Tournament, 0, len(d.UpcomingTournaments))
	removed := 0
	for _, q := range d.UpcomingTournaments {
		if q.Name == t.Name && q.StartDate == t.StartDate && q.EndDate == t.EndDate {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	d.UpcomingTournaments = kept
	return removed
}
