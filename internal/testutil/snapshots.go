package testutil

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/sportsboard/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteOutput writes a small payload under name.
func WriteOutput(t *testing.T, w *snapshots.Writer, name string) {
	t.Helper()
	if err := writeOutputPayload(w, name); err != nil {
		t.Fatalf("failed to write output %s: %v", name, err)
	}
}

func writeOutputPayload(w *snapshots.Writer, name string) error {
	if w == nil {
		return errors.New("nil writer")
	}
	return w.Write(name, map[string]any{"name": name, "items": []string{"sample"}}, false)
}

// OutputPath returns the expected file path for an output name.
func OutputPath(w *snapshots.Writer, name string) string {
	return snapshots.OutputPath(w.BasePath(), name)
}
