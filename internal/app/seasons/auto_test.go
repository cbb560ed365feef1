package seasons_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/metrics"
	"github.com/preston-bernstein/sportsboard/internal/store"
	"github.com/preston-bernstein/sportsboard/internal/testutil"
)

func TestAutoExpiresCurrentWindow(t *testing.T) {
	svc, ms := testutil.NewSeasonService(testutil.ActiveBadmintonDocument(), testutil.NoonOn("2026-01-12"))

	res, err := svc.Auto(context.Background(), "badminton")
	require.NoError(t, err)
	require.Equal(t, seasons.ActionExpired, res.Action)
	require.Equal(t, "Malaysia Open", res.Tournament.Name)

	state := ms.Load(context.Background()).Domains["badminton"]
	require.False(t, state.SeasonActive)
	require.Nil(t, state.CurrentTournament)
	require.Len(t, state.UpcomingTournaments, 1, "expiry does not promote in the same run")
	require.Equal(t, 1, ms.Saves())
}

func TestAutoKeepsWindowOnLastDay(t *testing.T) {
	svc, ms := testutil.NewSeasonService(testutil.ActiveBadmintonDocument(), testutil.NoonOn("2026-01-11"))

	res, err := svc.Auto(context.Background(), "badminton")
	require.NoError(t, err)
	require.Equal(t, seasons.ActionNoop, res.Action)
	require.False(t, res.Changed())
	require.Equal(t, 0, ms.Saves())
}

func TestAutoPromotesQueueHead(t *testing.T) {
	svc, ms := testutil.NewSeasonService(testutil.QueuedBadmintonDocument(), testutil.NoonOn("2026-01-07"))

	res, err := svc.Auto(context.Background(), "badminton")
	require.NoError(t, err)
	require.Equal(t, seasons.ActionPromoted, res.Action)

	state := ms.Load(context.Background()).Domains["badminton"]
	require.True(t, state.SeasonActive)
	require.Equal(t, "Malaysia Open", state.CurrentTournament.Name)
	require.Equal(t, store.FrequencyDaily, state.CurrentTournament.UpdateFrequency)
	require.Empty(t, state.UpcomingTournaments)
}

func TestAutoPromotesDespiteStaleActiveFlag(t *testing.T) {
	doc := testutil.MustDocumentJSON(`{
  "badminton": {
    "seasonActive": true,
    "currentTournament": null,
    "upcomingTournaments": [{"name": "India Open", "startDate": "2026-01-13", "endDate": "2026-01-18"}],
    "seasons": {}
  }
}`)
	svc, ms := testutil.NewSeasonService(doc, testutil.NoonOn("2026-01-13"))

	res, err := svc.Auto(context.Background(), "badminton")
	require.NoError(t, err)
	require.Equal(t, seasons.ActionPromoted, res.Action)
	require.Equal(t, "India Open", res.Tournament.Name)

	state := ms.Load(context.Background()).Domains["badminton"]
	require.True(t, state.SeasonActive)
	require.Equal(t, "India Open", state.CurrentTournament.Name)
	require.Empty(t, state.UpcomingTournaments)
	require.Equal(t, 1, ms.Saves())
}

func TestAutoBeforeHeadStartsIsNoop(t *testing.T) {
	svc, ms := testutil.NewSeasonService(testutil.QueuedBadmintonDocument(), testutil.NoonOn("2026-01-05"))

	res, err := svc.Auto(context.Background(), "badminton")
	require.NoError(t, err)
	require.Equal(t, seasons.ActionNoop, res.Action)
	require.Equal(t, 0, ms.Saves())
}

func TestAutoThenAutoExpiresThenPromotes(t *testing.T) {
	doc := testutil.ActiveBadmintonDocument()
	clock := testutil.NoonOn("2026-01-14")
	svc, ms := testutil.NewSeasonService(doc, clock)
	ctx := context.Background()

	first, err := svc.Auto(ctx, "badminton")
	require.NoError(t, err)
	require.Equal(t, seasons.ActionExpired, first.Action)

	second, err := svc.Auto(ctx, "badminton")
	require.NoError(t, err)
	require.Equal(t, seasons.ActionPromoted, second.Action)
	require.Equal(t, "India Open", ms.Load(ctx).Domains["badminton"].CurrentTournament.Name)
}

func TestAutoAllPersistsOnlyChangedDomains(t *testing.T) {
	rec := metrics.NewRecorder()
	svc, ms := testutil.NewSeasonService(nil, testutil.NoonOn("2026-01-08"), seasons.WithMetrics(rec))

	results, err := svc.AutoAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	byDomain := map[string]seasons.AutoResult{}
	for _, r := range results {
		byDomain[r.Domain] = r
	}
	require.Equal(t, seasons.ActionPromoted, byDomain["badminton"].Action)
	require.Equal(t, seasons.ActionNoop, byDomain["events"].Action)

	doc := ms.Load(context.Background())
	require.Equal(t, []string{"badminton"}, doc.DomainNames())
	require.Equal(t, 1, ms.Saves())

	require.Equal(t, 1, rec.Boundary("badminton").Actions[metrics.ActionPromoted])
	require.Equal(t, 1, rec.Boundary("events").Actions[metrics.ActionNoop])
}

func TestAutoUnknownDomain(t *testing.T) {
	svc, _ := testutil.NewSeasonService(nil, testutil.NoonOn("2026-01-08"))
	_, err := svc.Auto(context.Background(), "curling")
	require.ErrorIs(t, err, seasons.ErrUnknownDomain)
}

func TestAutoWriteFailureRecordsError(t *testing.T) {
	rec := metrics.NewRecorder()
	svc, ms := testutil.NewSeasonService(testutil.QueuedBadmintonDocument(), testutil.NoonOn("2026-01-07"), seasons.WithMetrics(rec))
	ms.FailSaves(errors.New("read-only filesystem"))

	_, err := svc.Auto(context.Background(), "badminton")
	require.ErrorIs(t, err, store.ErrWriteFailure)
	require.Equal(t, 1, rec.Boundary("badminton").Errors)
	require.False(t, ms.Load(context.Background()).Domains["badminton"].SeasonActive)
}
