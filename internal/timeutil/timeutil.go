package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DefaultTimezone is used when no zone is configured; the scraped sites publish in KST.
const DefaultTimezone = "Asia/Seoul"

// ErrInvalidDate is returned for anything that is not a real YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date (expected YYYY-MM-DD)")

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a strict YYYY-MM-DD date string into a date-only value.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if !dateShape.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date builds a date-only value. Date-only values are anchored at UTC midnight
// so that subtracting two of them never crosses a DST transition.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the time of day from t as observed in loc (t's own location when loc is nil).
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	a = DateOf(a, nil)
	b = DateOf(b, nil)
	return int(b.Sub(a).Hours() / 24)
}

// ResolveTimezone returns a location for a tz string, or nil if invalid.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}

// LocationOrDefault resolves tz, falling back to DefaultTimezone and finally UTC.
func LocationOrDefault(tz string) *time.Location {
	if loc := ResolveTimezone(tz); loc != nil {
		return loc
	}
	if loc := ResolveTimezone(DefaultTimezone); loc != nil {
		return loc
	}
	return time.UTC
}

// ParseReference resolves an evaluation date. Strict YYYY-MM-DD is tried first,
// then natural phrases such as "tomorrow" or "next friday" relative to now.
func ParseReference(value string, now time.Time, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DateOf(now, loc), nil
	}
	if t, err := ParseDate(value); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	base := now
	if loc != nil {
		base = now.In(loc)
	}
	r, err := w.Parse(value, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", value, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return DateOf(r.Time, loc), nil
}
