package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

func day(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := timeutil.ParseDate(v)
	require.NoError(t, err)
	return d
}

func window(t *testing.T, name, start, end string) Window {
	t.Helper()
	w, err := NewWindow(name, start, end)
	require.NoError(t, err)
	return w
}

func TestEvaluateOngoing(t *testing.T) {
	malaysia := window(t, "Malaysia Open", "2026-01-06", "2026-01-11")

	cases := []struct {
		now    string
		offset int
		label  string
	}{
		{"2026-01-06", 0, "D-day"},
		{"2026-01-08", 2, "D+2"},
		{"2026-01-11", 5, "D+5"},
	}
	for _, tc := range cases {
		state := Evaluate(day(t, tc.now), []Window{malaysia})
		require.Equal(t, KindOngoing, state.Kind, tc.now)
		require.NotNil(t, state.Window)
		require.Equal(t, "Malaysia Open", state.Window.Name)
		require.Equal(t, tc.offset, state.OffsetDays, tc.now)
		require.Equal(t, tc.label, state.Label, tc.now)
	}
}

func TestEvaluateUpcoming(t *testing.T) {
	malaysia := window(t, "Malaysia Open", "2026-01-06", "2026-01-11")

	state := Evaluate(day(t, "2026-01-01"), []Window{malaysia})
	require.Equal(t, KindUpcoming, state.Kind)
	require.Equal(t, 5, state.OffsetDays)
	require.Equal(t, "D-5", state.Label)

	state = Evaluate(day(t, "2026-01-05"), []Window{malaysia})
	require.Equal(t, "D-1", state.Label)
}

func TestEvaluateEndedWindowYieldsNone(t *testing.T) {
	past := window(t, "Past", "2025-03-01", "2025-10-31")
	state := Evaluate(day(t, "2025-11-01"), []Window{past})
	require.Equal(t, KindNone, state.Kind)
	require.Nil(t, state.Window)
	require.Empty(t, state.Label)
}

func TestEvaluateEmpty(t *testing.T) {
	require.Equal(t, KindNone, Evaluate(day(t, "2026-01-01"), nil).Kind)
	require.Equal(t, KindNone, Evaluate(day(t, "2026-01-01"), []Window{}).Kind)
}

func TestEvaluatePicksEarliestUpcoming(t *testing.T) {
	windows := []Window{
		window(t, "All England", "2026-03-03", "2026-03-08"),
		window(t, "India Open", "2026-01-13", "2026-01-18"),
		window(t, "Also India", "2026-01-13", "2026-01-14"),
	}
	state := Evaluate(day(t, "2026-01-12"), windows)
	require.Equal(t, KindUpcoming, state.Kind)
	require.Equal(t, "India Open", state.Window.Name, "equal starts keep input order")
	require.Equal(t, "D-1", state.Label)
}

func TestEvaluateOngoingWinsOverUpcoming(t *testing.T) {
	windows := []Window{
		window(t, "Later", "2026-02-01", "2026-02-10"),
		window(t, "Now", "2026-01-01", "2026-01-31"),
	}
	state := Evaluate(day(t, "2026-01-20"), windows)
	require.Equal(t, KindOngoing, state.Kind)
	require.Equal(t, "Now", state.Window.Name)
	require.Equal(t, "D+19", state.Label)
}

func TestEvaluateFirstOngoingInInputOrder(t *testing.T) {
	windows := []Window{
		window(t, "First", "2026-01-01", "2026-01-31"),
		window(t, "Overlap", "2026-01-10", "2026-01-20"),
	}
	state := Evaluate(day(t, "2026-01-15"), windows)
	require.Equal(t, "First", state.Window.Name)
}

func TestEvaluateIgnoresTimeOfDay(t *testing.T) {
	malaysia := window(t, "Malaysia Open", "2026-01-06", "2026-01-11")
	late := time.Date(2026, 1, 11, 23, 59, 59, 0, time.UTC)
	state := Evaluate(late, []Window{malaysia})
	require.Equal(t, KindOngoing, state.Kind)
	require.Equal(t, "D+5", state.Label)
}

func TestEvaluatePropertiesAcrossRange(t *testing.T) {
	w := window(t, "Season", "2026-03-01", "2026-10-31")
	for now := day(t, "2026-01-01"); now.Before(day(t, "2027-01-01")); now = now.AddDate(0, 0, 1) {
		state := Evaluate(now, []Window{w})
		switch {
		case now.Before(w.Start):
			require.Equal(t, KindUpcoming, state.Kind)
			require.Equal(t, timeutil.DaysBetween(now, w.Start), state.OffsetDays)
		case now.After(w.End):
			require.Equal(t, KindNone, state.Kind)
		default:
			require.Equal(t, KindOngoing, state.Kind)
			require.Equal(t, timeutil.DaysBetween(w.Start, now), state.OffsetDays)
		}
	}
}

func TestEvaluateTiersPrefersEarlierTier(t *testing.T) {
	tournaments := []Window{
		window(t, "Malaysia Open", "2026-01-06", "2026-01-11"),
		window(t, "All England Open", "2026-03-03", "2026-03-08"),
	}
	seasons := []Window{window(t, "2026", "2026-01-01", "2026-12-31")}

	cases := []struct {
		now   string
		name  string
		kind  Kind
		label string
	}{
		{"2026-01-01", "Malaysia Open", KindUpcoming, "D-5"},
		{"2026-01-08", "Malaysia Open", KindOngoing, "D+2"},
		{"2026-02-20", "All England Open", KindUpcoming, "D-11"},
		{"2026-05-30", "2026", KindOngoing, "D+149"},
	}
	for _, tc := range cases {
		state := EvaluateTiers(day(t, tc.now), tournaments, seasons)
		require.Equal(t, tc.kind, state.Kind, tc.now)
		require.Equal(t, tc.name, state.Window.Name, tc.now)
		require.Equal(t, tc.label, state.Label, tc.now)
	}

	require.Equal(t, KindNone, EvaluateTiers(day(t, "2027-02-01"), tournaments, seasons).Kind)
	require.Equal(t, KindNone, EvaluateTiers(day(t, "2026-01-01")).Kind)
}

func TestClassify(t *testing.T) {
	w := window(t, "Season", "2026-03-01", "2026-10-31")
	require.Equal(t, KindUpcoming, Classify(day(t, "2026-02-28"), w))
	require.Equal(t, KindOngoing, Classify(day(t, "2026-03-01"), w))
	require.Equal(t, KindOngoing, Classify(day(t, "2026-10-31"), w))
	require.Equal(t, KindEnded, Classify(day(t, "2026-11-01"), w))
}

func TestLabel(t *testing.T) {
	require.Equal(t, "D-day", Label(KindOngoing, 0))
	require.Equal(t, "D-day", Label(KindUpcoming, 0))
	require.Equal(t, "D-day", Label(KindNone, 0))
	require.Equal(t, "D+3", Label(KindOngoing, 3))
	require.Equal(t, "D-7", Label(KindUpcoming, 7))
	require.Equal(t, "", Label(KindNone, 4))
}
