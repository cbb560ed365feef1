package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the document in memory; used for tests and dry runs.
type MemoryStore struct {
	mu    sync.RWMutex
	doc   *Document
	saves int
	now   func() time.Time
	err   error
	lock  mutexLock
}

// NewMemoryStore constructs a store seeded with doc (nil for empty).
func NewMemoryStore(doc *Document) *MemoryStore {
	if doc == nil {
		doc = NewDocument()
	}
	return &MemoryStore{doc: doc.Clone(), now: time.Now}
}

// WithClock overrides the save timestamp source.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// FailSaves makes every subsequent Save return err (nil to clear).
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Load returns a copy of the stored document.
func (s *MemoryStore) Load(ctx context.Context) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Save stores a copy of doc after stamping LastUpdated.
func (s *MemoryStore) Save(ctx context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return writeFailure(s.err)
	}
	doc.LastUpdated = s.now().UTC()
	s.doc = doc.Clone()
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Lock serializes Update calls in-process.
func (s *MemoryStore) Lock(ctx context.Context) (func(), error) {
	return s.lock.Lock(ctx)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
