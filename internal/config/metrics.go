package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(s MetricsSettings) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, boolOr(s.Enabled, true)),
		Port:         envOrDefault(envMetricsPort, firstNonEmpty(s.Port, defaultMetricsPort)),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, s.OtlpEndpoint),
		ServiceName:  envOrDefault(envOtelService, firstNonEmpty(s.ServiceName, defaultServiceName)),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, boolOr(s.OtlpInsecure, true)),
	}
}
