package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/sportsboard/internal/logging"
)

const sqliteSchemaVersion = 1

// SQLiteStore keeps the document as a single JSON row, with an append-only
// history of previous saves.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
	lock   Locker
}

// NewSQLiteStore opens (or creates) the database at path and runs migrations.
// ":memory:" gives a private in-process database.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	inMemory := path == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, path: path, logger: logger, now: time.Now}
	if inMemory {
		s.lock = &mutexLock{}
	} else {
		s.lock = newFileLock(path)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= sqliteSchemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS configuration (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			body       TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS configuration_history (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			body     TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", sqliteSchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads the stored document; a missing row or undecodable body yields an empty document.
func (s *SQLiteStore) Load(ctx context.Context) *Document {
	logger := logging.FromContext(ctx, s.logger)

	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM configuration WHERE id = 1`).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("configuration missing, using defaults", slog.String(logging.FieldPath, s.path))
		} else {
			logger.Warn("configuration unreadable, using defaults", slog.String(logging.FieldPath, s.path), "error", err)
		}
		return NewDocument()
	}
	doc, err := decodeDocument([]byte(body))
	if err != nil {
		logger.Warn("configuration corrupt, using defaults", slog.String(logging.FieldPath, s.path), "error", err)
		return NewDocument()
	}
	return doc
}

// Save stamps LastUpdated and replaces the stored row, recording the previous body in history.
func (s *SQLiteStore) Save(ctx context.Context, doc *Document) error {
	if doc == nil {
		return writeFailure(errors.New("nil document"))
	}
	doc.LastUpdated = s.now().UTC()
	body, err := doc.MarshalJSON()
	if err != nil {
		return writeFailure(err)
	}
	stamp := doc.LastUpdated.Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return writeFailure(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO configuration_history (body, saved_at)
		 SELECT body, updated_at FROM configuration WHERE id = 1`); err != nil {
		return writeFailure(err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO configuration (id, body, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(body), stamp); err != nil {
		return writeFailure(err)
	}
	if err := tx.Commit(); err != nil {
		return writeFailure(err)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "configuration saved", slog.String(logging.FieldPath, s.path))
	return nil
}

// HistoryCount returns the number of superseded documents kept.
func (s *SQLiteStore) HistoryCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM configuration_history`).Scan(&n)
	return n, err
}

// Lock serializes writers.
func (s *SQLiteStore) Lock(ctx context.Context) (func(), error) {
	return s.lock.Lock(ctx)
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
