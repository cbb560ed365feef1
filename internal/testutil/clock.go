package testutil

import (
	"time"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics; intended for tests.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

// Seoul returns the default domain zone.
func Seoul() *time.Location {
	return timeutil.LocationOrDefault(timeutil.DefaultTimezone)
}

// NoonOn returns a clock fixed at 12:00 Seoul time on date (YYYY-MM-DD).
func NoonOn(date string) func() time.Time {
	d, err := timeutil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return NowAt(time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, Seoul()))
}
