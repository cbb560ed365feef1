package season

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// Kind is the temporal classification of a window relative to a reference day.
type Kind string

const (
	KindOngoing  Kind = "ongoing"
	KindUpcoming Kind = "upcoming"
	KindEnded    Kind = "ended"
	KindNone     Kind = "none"
)

// State is derived from a reference day and a set of windows; it is never stored.
type State struct {
	Kind       Kind    `json:"kind"`
	Window     *Window `json:"-"`
	OffsetDays int     `json:"offsetDays"`
	Label      string  `json:"label"`
}

// Evaluate picks the first window containing now, else the window with the
// smallest start strictly after now. Ties keep input order. Callers must pass
// non-overlapping windows per domain; overlaps are not detected here.
//
// now is reduced to its calendar date as seen in its own location, so callers
// should convert it to the domain's zone first (see timeutil.DateOf).
func Evaluate(now time.Time, windows []Window) State {
	today := timeutil.DateOf(now, nil)

	for i := range windows {
		if windows[i].Contains(today) {
			w := windows[i]
			offset := timeutil.DaysBetween(w.Start, today)
			return State{Kind: KindOngoing, Window: &w, OffsetDays: offset, Label: Label(KindOngoing, offset)}
		}
	}

	next := -1
	for i := range windows {
		start := timeutil.DateOf(windows[i].Start, nil)
		if !start.After(today) {
			continue
		}
		if next < 0 || start.Before(timeutil.DateOf(windows[next].Start, nil)) {
			next = i
		}
	}
	if next >= 0 {
		w := windows[next]
		offset := timeutil.DaysBetween(today, w.Start)
		return State{Kind: KindUpcoming, Window: &w, OffsetDays: offset, Label: Label(KindUpcoming, offset)}
	}

	return State{Kind: KindNone}
}

// EvaluateTiers evaluates each tier in turn and returns the first state that
// is not KindNone. A later tier is only consulted when nothing in the earlier
// ones is ongoing or still to come.
func EvaluateTiers(now time.Time, tiers ...[]Window) State {
	for _, windows := range tiers {
		if st := Evaluate(now, windows); st.Kind != KindNone {
			return st
		}
	}
	return State{Kind: KindNone}
}

// Classify places a single window relative to now.
func Classify(now time.Time, w Window) Kind {
	today := timeutil.DateOf(now, nil)
	switch {
	case w.Contains(today):
		return KindOngoing
	case timeutil.DateOf(w.Start, nil).After(today):
		return KindUpcoming
	default:
		return KindEnded
	}
}

// Label renders the D-day text: "D-day" for a zero offset, "D+n" while ongoing, "D-n" while upcoming.
func Label(kind Kind, offsetDays int) string {
	if offsetDays < 0 {
		offsetDays = -offsetDays
	}
	if offsetDays == 0 {
		return "D-day"
	}
	switch kind {
	case KindOngoing:
		return fmt.Sprintf("D+%d", offsetDays)
	case KindUpcoming:
		return fmt.Sprintf("D-%d", offsetDays)
	default:
		return ""
	}
}
