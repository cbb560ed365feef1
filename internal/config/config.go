package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// Config holds runtime configuration for the CLI and the dashboard server.
type Config struct {
	Port          string
	CheckInterval Duration
	Timezone      string
	DataDir       string
	HistoryDays   int
	Store         StoreConfig
	Log           LogConfig
	Metrics       MetricsConfig
	Scrape        ScrapeConfig
	// AdminToken guards POST /admin/check; empty disables the endpoint.
	// Read from the environment only.
	AdminToken string
	// SettingsPath is the settings file that was read, empty when none existed.
	SettingsPath string
}

// StoreConfig selects the configuration document backend.
type StoreConfig struct {
	Kind       string
	Path       string
	SQLitePath string
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// ScrapeConfig controls the page fetchers.
type ScrapeConfig struct {
	Timeout   Duration
	Retries   int
	UserAgent string
	Browser   bool

	// MinInterval spaces consecutive requests, retries included.
	MinInterval Duration
}

// Location resolves the configured timezone.
func (c Config) Location() *time.Location {
	return timeutil.LocationOrDefault(c.Timezone)
}

// Load reads the optional settings file and then environment variables;
// environment wins over the file, the file wins over built-in defaults.
func Load() (Config, error) {
	settingsPath := envOrDefault(envSettings, defaultSettingsFile)
	s, err := ReadSettings(settingsPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		settingsPath = ""
	case err != nil:
		return Config{}, fmt.Errorf("read settings %s: %w", settingsPath, err)
	}

	cfg := Config{
		Port:          envOrDefault(envPort, firstNonEmpty(s.Port, defaultPort)),
		CheckInterval: durationEnvOrDefault(envCheckInterval, durationOr(s.CheckInterval, defaultCheckInterval)),
		Timezone:      envOrDefault(envTimezone, firstNonEmpty(s.Timezone, timeutil.DefaultTimezone)),
		DataDir:       envOrDefault(envDataDir, firstNonEmpty(s.DataDir, defaultDataDir)),
		HistoryDays:   intEnvOrDefault(envHistoryDays, intOr(s.HistoryDays, defaultHistoryDays)),
		Store:         loadStore(s),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, firstNonEmpty(s.Log.Level, defaultLogLevel)),
			Format: envOrDefault(envLogFormat, firstNonEmpty(s.Log.Format, defaultLogFormat)),
		},
		Metrics:      loadMetrics(s.Metrics),
		Scrape:       loadScrape(s.Scrape),
		AdminToken:   os.Getenv(envAdminToken),
		SettingsPath: settingsPath,
	}
	return cfg, nil
}

func loadStore(s Settings) StoreConfig {
	kind := strings.ToLower(envOrDefault(envStore, firstNonEmpty(s.Store, StoreFile)))
	switch kind {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		kind = StoreFile
	}
	return StoreConfig{
		Kind:       kind,
		Path:       envOrDefault(envConfigPath, firstNonEmpty(s.ConfigPath, defaultConfigPath)),
		SQLitePath: envOrDefault(envSQLitePath, firstNonEmpty(s.SQLitePath, defaultSQLitePath)),
	}
}

func loadScrape(s ScrapeSettings) ScrapeConfig {
	return ScrapeConfig{
		Timeout:   durationEnvOrDefault(envScrapeTimeout, durationOr(s.Timeout, defaultScrapeTimeout)),
		Retries:   nonNegativeIntEnvOrDefault(envScrapeRetries, intPtrOr(s.Retries, defaultScrapeRetries)),
		UserAgent: envOrDefault(envScrapeAgent, firstNonEmpty(s.UserAgent, defaultScrapeAgent)),
		Browser:   boolEnvOrDefault(envScrapeBrowser, boolOr(s.Browser, false)),

		MinInterval: durationEnvOrDefault(envScrapeGap, durationOr(s.MinInterval, defaultScrapeGap)),
	}
}
