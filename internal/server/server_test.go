package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/config"
	"github.com/preston-bernstein/sportsboard/internal/metrics"
	"github.com/preston-bernstein/sportsboard/internal/store"
	"github.com/preston-bernstein/sportsboard/internal/testutil"
)

func memoryConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:          "0",
		CheckInterval: 5 * time.Millisecond,
		Timezone:      "Asia/Seoul",
		DataDir:       t.TempDir(),
		Store:         config.StoreConfig{Kind: config.StoreMemory},
	}
}

func TestServerServesHealthAndStatus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := New(memoryConfig(t), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	deadline := time.Now().Add(time.Second)
	for !srv.poller.Status().IsReady() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for first boundary check")
		}
		time.Sleep(5 * time.Millisecond)
	}

	router := srv.Handler()
	for _, path := range []string{"/health", "/ready", "/status", "/status/badminton", "/data"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 from %s, got %d", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/badminton", nil))
	var report seasons.Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Domain != "badminton" {
		t.Fatalf("unexpected report %+v", report)
	}
	if srv.Seasons() == nil {
		t.Fatalf("expected seasons service exposed")
	}
}

func TestNewFailsWhenStoreCannotOpen(t *testing.T) {
	orig := openStore
	defer func() { openStore = orig }()
	openStore = func(store.Options, *slog.Logger) (store.Store, error) {
		return nil, errors.New("locked")
	}

	if _, err := New(memoryConfig(t), nil); err == nil {
		t.Fatalf("expected store error")
	}
}

func TestOpenStoreHonoursKind(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Store = config.StoreConfig{Kind: config.StoreFile, Path: t.TempDir() + "/config.json"}
	st, err := OpenStore(cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := st.(*store.FileStore); !ok {
		t.Fatalf("expected file store, got %T", st)
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := memoryConfig(t)
	cfg.Metrics = config.MetricsConfig{Enabled: true}
	srv, err := newServerWithMetrics(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	srv, err := newServerWithMetrics(memoryConfig(t), nil, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
}

func TestBuildMetricsSuccessPathMountsHandler(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusAccepted) })
		return metrics.NewRecorder(), h, func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true, Port: "9999"}}, nil, nil)
	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/metrics", nil)
	testutil.AssertStatus(t, rr, http.StatusAccepted)
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}
	st := store.NewMemoryStore(nil)

	srv := newServerWithDeps(config.Config{}, nil, st, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}
	logger, buf := testutil.NewBufferLogger()

	srv := newServerWithDeps(config.Config{}, logger, nil, httpSrv, p)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected stop failure to be logged")
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, nil, &testutil.ErrHTTPServer{}, &testutil.StubPoller{})

	stopCalled := make(chan struct{})
	srv.startServer(func() { close(stopCalled) })

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := &testutil.CloseableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, store.NewMemoryStore(nil), httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected poller started and stopped once, got %d/%d", plr.StartCalls, plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
