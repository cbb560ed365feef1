package snapshots

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSONFile persists payload as indented JSON at target. The bytes go to a
// sibling temp file first and are renamed into place, so readers never observe
// a truncated file. It reports whether the file content changed.
func WriteJSONFile(target string, payload any) (bool, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return false, err
	}
	data = append(data, '\n')

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return false, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return false, err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return false, err
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return false, err
	}
	return true, nil
}
