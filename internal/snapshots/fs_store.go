package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no output exists for a name.
var ErrNotFound = errors.New("snapshot not found")

// Store defines how outputs are read back for the dashboard.
type Store interface {
	Load(name string) (json.RawMessage, error)
	Manifest() (Manifest, error)
}

// FSStore loads outputs from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// Load returns the raw JSON of the latest output for name.
func (s *FSStore) Load(name string) (json.RawMessage, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if !ValidName(name) {
		return nil, fmt.Errorf("invalid output name %q", name)
	}
	data, err := os.ReadFile(OutputPath(s.basePath, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("snapshot %s is not valid JSON", name)
	}
	return json.RawMessage(data), nil
}

// Manifest reads the manifest written alongside the outputs.
func (s *FSStore) Manifest() (Manifest, error) {
	if s == nil {
		return Manifest{}, errors.New("snapshot store not configured")
	}
	m, err := readManifest(filepath.Join(s.basePath, manifestFile), 0)
	if err != nil && os.IsNotExist(err) {
		return m, nil
	}
	return m, err
}
