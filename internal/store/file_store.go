package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/snapshots"
)

// FileStore persists the document as a JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
	lock   *fileLock
}

// NewFileStore constructs a FileStore for path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
		now:    time.Now,
		lock:   newFileLock(path),
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the document. Missing and corrupt files both yield an empty document.
func (s *FileStore) Load(ctx context.Context) *Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log(ctx).Debug("configuration missing, using defaults", slog.String(logging.FieldPath, s.path))
		} else {
			logging.Warn(s.log(ctx), "configuration unreadable, using defaults",
				slog.String(logging.FieldPath, s.path), "error", err)
		}
		return NewDocument()
	}
	doc, err := decodeDocument(data)
	if err != nil {
		logging.Warn(s.log(ctx), "configuration corrupt, using defaults",
			slog.String(logging.FieldPath, s.path), "error", err)
		return NewDocument()
	}
	return doc
}

// Save stamps LastUpdated and atomically replaces the file.
func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	if doc == nil {
		return writeFailure(errors.New("nil document"))
	}
	doc.LastUpdated = s.now().UTC()
	if _, err := snapshots.WriteJSONFile(s.path, doc); err != nil {
		logging.Error(s.log(ctx), "configuration save failed", err, slog.String(logging.FieldPath, s.path))
		return writeFailure(err)
	}
	logging.Info(s.log(ctx), "configuration saved", slog.String(logging.FieldPath, s.path))
	return nil
}

// Lock takes the cross-process lock on the configuration file.
func (s *FileStore) Lock(ctx context.Context) (func(), error) {
	return s.lock.Lock(ctx)
}

// Close is a no-op for files.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

func decodeDocument(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
