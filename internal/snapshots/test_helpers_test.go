package snapshots

import (
	"os"
	"testing"
	"time"
)

type samplePayload struct {
	Domain string   `json:"domain"`
	Items  []string `json:"items"`
}

func writeOutput(t *testing.T, w *Writer, name string, payload any) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for %s", name)
	}
	if err := w.Write(name, payload, false); err != nil {
		t.Fatalf("failed to write output %s: %v", name, err)
	}
}

func requireFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func fixedNow(v time.Time) func() time.Time {
	return func() time.Time { return v }
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
