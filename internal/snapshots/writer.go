package snapshots

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// Writer persists scraped outputs, a dated history copy of each, and the manifest.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling history retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 14
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Write stores payload as <base>/<name>.json, keeps today's copy under history/
// and prunes history older than the retention window. fallback marks payloads
// built from static data because the live fetch failed.
func (w *Writer) Write(name string, payload any, fallback bool) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if !ValidName(name) {
		return fmt.Errorf("invalid output name %q", name)
	}

	if _, err := WriteJSONFile(OutputPath(w.basePath, name), payload); err != nil {
		return err
	}
	today := timeutil.FormatDate(w.now().UTC())
	if _, err := WriteJSONFile(HistoryPath(w.basePath, name, today), payload); err != nil {
		return err
	}
	return w.updateManifest(name, today, fallback)
}

// Exists reports whether an output for name has been written before.
func (w *Writer) Exists(name string) bool {
	if w == nil || !ValidName(name) {
		return false
	}
	_, err := os.Stat(OutputPath(w.basePath, name))
	return err == nil
}

func (w *Writer) updateManifest(name, date string, fallback bool) error {
	manifestPath := filepath.Join(w.basePath, manifestFile)
	m, _ := readManifest(manifestPath, w.retentionDays)

	dates, err := w.listDates(name)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	pruned := w.pruneHistory(name, dates)

	m.Outputs[name] = OutputMeta{
		Dates:         pruned,
		LastRefreshed: w.now().UTC(),
		Fallback:      fallback,
	}
	m.Retention.HistoryDays = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates(name string) ([]string, error) {
	dir := filepath.Join(w.basePath, historyDir, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var dates []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneHistory(name string, dates []string) []string {
	cutoff := timeutil.DateOf(w.now(), time.UTC).AddDate(0, 0, -w.retentionDays)
	var keep []string
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(HistoryPath(w.basePath, name, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
