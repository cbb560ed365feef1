package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// fileLock is an advisory cross-process lock on <path>.lock combined with an
// in-process mutex (flock locks are per file descriptor, not per goroutine).
type fileLock struct {
	mu   sync.Mutex
	path string
}

func newFileLock(target string) *fileLock {
	return &fileLock{path: target + ".lock"}
}

func (l *fileLock) Lock(ctx context.Context) (func(), error) {
	l.mu.Lock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		l.mu.Unlock()
		return nil, err
	}
	fl := flock.New(l.path)
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		l.mu.Unlock()
		return nil, err
	}
	if !ok {
		l.mu.Unlock()
		return nil, fmt.Errorf("could not acquire %s", l.path)
	}
	return func() {
		_ = fl.Unlock()
		l.mu.Unlock()
	}, nil
}

// mutexLock is the in-process lock used by stores without a file behind them.
type mutexLock struct {
	mu sync.Mutex
}

func (l *mutexLock) Lock(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	return l.mu.Unlock, nil
}
