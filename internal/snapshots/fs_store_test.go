package snapshots

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFSStoreLoad(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 7)
	writeOutput(t, w, "volleyball", samplePayload{Domain: "volleyball", Items: []string{"V-League"}})

	store := NewFSStore(dir)
	raw, err := store.Load("volleyball")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	var got samplePayload
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Domain != "volleyball" || len(got.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", got)
	}

	m, err := store.Manifest()
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}
	if _, ok := m.Outputs["volleyball"]; !ok {
		t.Fatalf("expected manifest entry, got %+v", m.Outputs)
	}
}

func TestFSStoreErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir)
	if _, err := store.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Load("../etc/passwd"); err == nil {
		t.Fatalf("expected error for invalid name")
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{bad"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := store.Load("bad"); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}

	var nilStore *FSStore
	if _, err := nilStore.Load("x"); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := nilStore.Manifest(); err == nil {
		t.Fatalf("expected error for nil store manifest")
	}
}

func TestFSStoreManifestMissingIsEmpty(t *testing.T) {
	m, err := NewFSStore(t.TempDir()).Manifest()
	if err != nil {
		t.Fatalf("expected no error for missing manifest, got %v", err)
	}
	if len(m.Outputs) != 0 {
		t.Fatalf("expected empty outputs, got %+v", m.Outputs)
	}
}
