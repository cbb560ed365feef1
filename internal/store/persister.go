package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrWriteFailure wraps any error raised while persisting a document. The
// in-memory mutation that preceded it must be treated as not committed.
var ErrWriteFailure = errors.New("configuration write failed")

// Persister loads and saves the configuration document.
//
// Load never fails: a missing backing store yields an empty document and an
// unreadable one is logged and replaced by an empty document. Save stamps
// LastUpdated and overwrites the backing store in full.
type Persister interface {
	Load(ctx context.Context) *Document
	Save(ctx context.Context, doc *Document) error
}

// Locker serializes load→mutate→save cycles across processes.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// Store is a Persister that can also be locked.
type Store interface {
	Persister
	Locker
	Close() error
}

// MutateFunc changes doc in place and reports whether anything changed.
type MutateFunc func(doc *Document) (changed bool, err error)

// Update runs load→mutate→save under the store lock. The document is saved
// only when fn reports a change. The loaded (and possibly mutated) document
// is returned so callers can render the result.
func Update(ctx context.Context, s Store, fn MutateFunc) (*Document, bool, error) {
	unlock, err := s.Lock(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("lock configuration: %w", err)
	}
	defer unlock()

	doc := s.Load(ctx)
	changed, err := fn(doc)
	if err != nil {
		return doc, false, err
	}
	if !changed {
		return doc, false, nil
	}
	if err := s.Save(ctx, doc); err != nil {
		return doc, false, err
	}
	return doc, true, nil
}

func writeFailure(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrWriteFailure, err)
}
