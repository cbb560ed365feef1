package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Settings mirrors the optional sportsboard.json5 file. Pointers distinguish
// "unset" from false/zero so a local override can turn a flag off.
type Settings struct {
	ConfigPath    string          `json:"configPath"`
	Store         string          `json:"store"`
	SQLitePath    string          `json:"sqlitePath"`
	Timezone      string          `json:"timezone"`
	DataDir       string          `json:"dataDir"`
	HistoryDays   int             `json:"historyDays"`
	Port          string          `json:"port"`
	CheckInterval string          `json:"checkInterval"`
	Log           LogSettings     `json:"log"`
	Metrics       MetricsSettings `json:"metrics"`
	Scrape        ScrapeSettings  `json:"scrape"`
}

type LogSettings struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type MetricsSettings struct {
	Enabled      *bool  `json:"enabled"`
	Port         string `json:"port"`
	OtlpEndpoint string `json:"otlpEndpoint"`
	ServiceName  string `json:"serviceName"`
	OtlpInsecure *bool  `json:"otlpInsecure"`
}

type ScrapeSettings struct {
	Timeout   string `json:"timeout"`
	Retries   *int   `json:"retries"`
	UserAgent string `json:"userAgent"`
	Browser   *bool  `json:"browser"`

	MinInterval string `json:"minInterval"`
}

// ReadSettings reads name and merges <base>.local.<ext> over it. It returns
// os.ErrNotExist when neither file exists.
func ReadSettings(name string) (Settings, error) {
	var out Settings
	found := false

	data, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(data) > 0 {
		if err := json5.Unmarshal(data, &out); err != nil {
			return out, err
		}
		found = true
	}

	localPath := localName(name)
	localData, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(localData) > 0 {
		var override Settings
		if err := json5.Unmarshal(localData, &override); err != nil {
			return out, fmt.Errorf("%s: %w", localPath, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return out, err
		}
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

func localName(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".local"+ext)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func intOr(v int, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func intPtrOr(v *int, fallback int) int {
	if v == nil || *v < 0 {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
