package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJSONFileCreatesParentsAndReportsChange(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	changed, err := WriteJSONFile(target, map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected first write to report a change")
	}

	changed, err = WriteJSONFile(target, map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if changed {
		t.Fatalf("expected identical payload to be skipped")
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil || got["a"] != 1 {
		t.Fatalf("unexpected content %s (%v)", data, err)
	}
}

func TestWriteJSONFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.json")
	if _, err := WriteJSONFile(target, []string{"x"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.json" {
		t.Fatalf("expected only out.json, got %v", entries)
	}
}

func TestWriteJSONFileRejectsUnencodable(t *testing.T) {
	if _, err := WriteJSONFile(filepath.Join(t.TempDir(), "x.json"), make(chan int)); err == nil {
		t.Fatalf("expected marshal error")
	}
}
