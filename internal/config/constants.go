package config

import "time"

const (
	envSettings      = "SPORTSBOARD_SETTINGS"
	envConfigPath    = "SPORTSBOARD_CONFIG"
	envStore         = "SPORTSBOARD_STORE"
	envSQLitePath    = "SPORTSBOARD_SQLITE_PATH"
	envTimezone      = "SPORTSBOARD_TIMEZONE"
	envDataDir       = "SPORTSBOARD_DATA_DIR"
	envHistoryDays   = "SPORTSBOARD_HISTORY_DAYS"
	envPort          = "PORT"
	envCheckInterval = "CHECK_INTERVAL"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envScrapeTimeout = "SCRAPE_TIMEOUT"
	envScrapeRetries = "SCRAPE_RETRIES"
	envScrapeAgent   = "SCRAPE_USER_AGENT"
	envScrapeBrowser = "SCRAPE_BROWSER"
	envScrapeGap     = "SCRAPE_MIN_INTERVAL"
	envAdminToken    = "ADMIN_TOKEN"

	defaultSettingsFile = "sportsboard.json5"
	defaultConfigPath   = "data/config.json"
	defaultSQLitePath   = "data/sportsboard.db"
	defaultDataDir      = "data/output"
	defaultHistoryDays  = 14
	defaultPort         = "4000"
	// Boundaries move at day granularity; hourly checks catch a midnight rollover soon enough.
	defaultCheckInterval = Duration(time.Hour)
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultMetricsPort   = "9090"
	defaultServiceName   = "sportsboard"
	defaultScrapeTimeout = 30 * Duration(time.Second)
	defaultScrapeRetries = 2
	defaultScrapeGap     = Duration(time.Second)
	defaultScrapeAgent   = "sportsboard/1.0 (+https://github.com/preston-bernstein/sportsboard)"
)

// Persister backends accepted by SPORTSBOARD_STORE.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)
