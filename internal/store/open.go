package store

import (
	"fmt"
	"log/slog"
)

// Backends accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and locates a Store backend.
type Options struct {
	Backend    string
	Path       string
	SQLitePath string
}

// Open builds the Store for opts.Backend. An empty backend means file.
func Open(opts Options, logger *slog.Logger) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file store: path required")
		}
		return NewFileStore(opts.Path, logger), nil
	case BackendSQLite:
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite store: path required")
		}
		return NewSQLiteStore(opts.SQLitePath, logger)
	case BackendMemory:
		return NewMemoryStore(nil), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
