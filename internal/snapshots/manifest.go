package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// Manifest tracks which outputs exist and when they were last refreshed.
type Manifest struct {
	Version     int                   `json:"version"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Retention   Retention             `json:"retention"`
	Outputs     map[string]OutputMeta `json:"outputs"`
}

type Retention struct {
	HistoryDays int `json:"historyDays"`
}

// OutputMeta describes one output file.
type OutputMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	Fallback      bool      `json:"fallback,omitempty"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention: Retention{
			HistoryDays: retentionDays,
		},
		Outputs: map[string]OutputMeta{},
	}
}

func readManifest(path string, retentionDays int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays), err
	}
	if m.Outputs == nil {
		m.Outputs = map[string]OutputMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	_, err := WriteJSONFile(filepath.Join(basePath, manifestFile), m)
	return err
}
