// Package season classifies dated windows (seasons, tournaments) relative to a
// reference day and renders the D-day label shown on the dashboard.
package season

import (
	"errors"
	"fmt"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// ErrInvalidWindow marks a window whose start falls after its end or whose dates do not parse.
var ErrInvalidWindow = errors.New("invalid window")

// Window is a named, closed calendar-date interval.
type Window struct {
	Name     string
	Start    time.Time
	End      time.Time
	Metadata map[string]string
}

// NewWindow builds a window from YYYY-MM-DD strings.
func NewWindow(name, start, end string) (Window, error) {
	s, err := timeutil.ParseDate(start)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start: %w", ErrInvalidWindow, err)
	}
	e, err := timeutil.ParseDate(end)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end: %w", ErrInvalidWindow, err)
	}
	w := Window{Name: name, Start: s, End: e}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate reports ErrInvalidWindow when start > end.
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("%w: %q is missing a date", ErrInvalidWindow, w.Name)
	}
	if timeutil.DateOf(w.Start, nil).After(timeutil.DateOf(w.End, nil)) {
		return fmt.Errorf("%w: %q starts %s after it ends %s", ErrInvalidWindow, w.Name,
			timeutil.FormatDate(w.Start), timeutil.FormatDate(w.End))
	}
	return nil
}

// Contains reports whether day falls within [Start, End].
func (w Window) Contains(day time.Time) bool {
	day = timeutil.DateOf(day, nil)
	return !day.Before(timeutil.DateOf(w.Start, nil)) && !day.After(timeutil.DateOf(w.End, nil))
}

// StartDate returns the start as YYYY-MM-DD.
func (w Window) StartDate() string { return timeutil.FormatDate(w.Start) }

// EndDate returns the end as YYYY-MM-DD.
func (w Window) EndDate() string { return timeutil.FormatDate(w.End) }

// Meta returns a metadata value or "".
func (w Window) Meta(key string) string {
	if w.Metadata == nil {
		return ""
	}
	return w.Metadata[key]
}
