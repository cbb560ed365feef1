package testutil

import (
	"time"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/store"
)

// NewSeasonService builds a seasons service over an in-memory store seeded
// with doc and a clock fixed at now. The store is returned for assertions.
func NewSeasonService(doc *store.Document, now func() time.Time, opts ...seasons.Option) (*seasons.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore(doc).WithClock(now)
	opts = append([]seasons.Option{seasons.WithClock(now), seasons.WithLocation(Seoul())}, opts...)
	return seasons.NewService(ms, opts...), ms
}
