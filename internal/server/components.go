package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/config"
	httpserver "github.com/preston-bernstein/sportsboard/internal/http"
	"github.com/preston-bernstein/sportsboard/internal/http/handlers"
	"github.com/preston-bernstein/sportsboard/internal/http/middleware"
	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/metrics"
	"github.com/preston-bernstein/sportsboard/internal/poller"
	"github.com/preston-bernstein/sportsboard/internal/snapshots"
	"github.com/preston-bernstein/sportsboard/internal/store"
)

var (
	metricsSetup = metrics.Setup
	openStore    = store.Open
)

// OpenStore opens the configuration document backend selected by cfg.
func OpenStore(cfg config.Config, logger *slog.Logger) (store.Store, error) {
	return openStore(store.Options{
		Backend:    cfg.Store.Kind,
		Path:       cfg.Store.Path,
		SQLitePath: cfg.Store.SQLitePath,
	}, logger)
}

// NewSeasonService builds the seasons service used by both the CLI and serve.
func NewSeasonService(cfg config.Config, st store.Store, logger *slog.Logger, recorder *metrics.Recorder) *seasons.Service {
	return seasons.NewService(st,
		seasons.WithLocation(cfg.Location()),
		seasons.WithLogger(logger),
		seasons.WithMetrics(recorder),
	)
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func buildHTTPServer(cfg config.Config, svc *seasons.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(svc, snapshots.NewFSStore(cfg.DataDir), logger, statusFn)
	admin := handlers.NewAdminHandler(svc, cfg.AdminToken, logger)
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}
