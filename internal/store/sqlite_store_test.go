package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreMemoryRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	s.now = func() time.Time { return time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	require.Empty(t, s.Load(ctx).Domains)

	doc := NewDocument()
	doc.Domains["volleyball"] = NewDomainState()
	doc.Domains["volleyball"].Seasons["2025-26"] = SeasonEntry{Start: "2025-10-18", End: "2026-04-05", Confirmed: true}
	require.NoError(t, s.Save(ctx, doc))

	loaded := s.Load(ctx)
	require.True(t, loaded.Domains["volleyball"].Seasons["2025-26"].Confirmed)
	require.Equal(t, doc.LastUpdated, loaded.LastUpdated.UTC())

	n, err := s.HistoryCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	require.NoError(t, s.Save(ctx, loaded))
	n, err = s.HistoryCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSQLiteStoreReopenKeepsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sportsboard.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	doc := NewDocument()
	doc.Domains["baseball"] = NewDomainState()
	doc.Domains["baseball"].SeasonActive = true
	require.NoError(t, s.Save(ctx, doc))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.True(t, reopened.Load(ctx).Domains["baseball"].SeasonActive)
}

func TestSQLiteStoreCorruptBodyReturnsEmpty(t *testing.T) {
	s, err := NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.Exec(`INSERT INTO configuration (id, body, updated_at) VALUES (1, '{broken', '')`)
	require.NoError(t, err)
	require.Empty(t, s.Load(context.Background()).Domains)
}
