// Package handlers serves the read-only dashboard API: domain status reports
// and the scraped JSON outputs.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/poller"
	"github.com/preston-bernstein/sportsboard/internal/snapshots"
)

// Reporter builds status reports. *seasons.Service satisfies it.
type Reporter interface {
	Status(ctx context.Context, domain string) (seasons.Report, error)
	StatusAll(ctx context.Context) []seasons.Report
}

// Handler wires HTTP routes to the seasons service and the output store.
type Handler struct {
	reports  Reporter
	snaps    snapshots.Store
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. snaps and statusFn may be nil.
func NewHandler(reports Reporter, snaps snapshots.Store, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		reports:  reports,
		snaps:    snaps,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports ready once the boundary poller has completed a check.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready", "poller": status}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// StatusAll returns the report of every known domain.
func (h *Handler) StatusAll(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	reports := h.reports.StatusAll(r.Context())
	loggerFromContext(r, h.logger).Debug("served status", slog.Int(logging.FieldCount, len(reports)))
	writeJSON(w, nethttp.StatusOK, map[string]any{"domains": reports}, h.logger)
}

// Route parameters bound by the router.
const (
	ParamDomain = "domain"
	ParamName   = "name"
)

// DomainStatus returns the report for /status/{domain}.
func (h *Handler) DomainStatus(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	domain := chi.URLParam(r, ParamDomain)
	if domain == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid domain", h.logger)
		return
	}

	report, err := h.reports.Status(r.Context(), domain)
	switch {
	case errors.Is(err, seasons.ErrInvalidDomain):
		writeError(w, r, nethttp.StatusBadRequest, "invalid domain", h.logger)
		return
	case errors.Is(err, seasons.ErrUnknownDomain):
		writeError(w, r, nethttp.StatusNotFound, "domain not found", h.logger)
		return
	case err != nil:
		logging.Error(loggerFromContext(r, h.logger), "status failed", err, slog.String(logging.FieldDomain, domain))
		writeError(w, r, nethttp.StatusInternalServerError, "status unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, report, h.logger)
}

// Outputs returns the manifest of scraped outputs.
func (h *Handler) Outputs(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.snaps == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "output store not configured", h.logger)
		return
	}
	m, err := h.snaps.Manifest()
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "manifest unreadable", "error", err)
		writeError(w, r, nethttp.StatusBadGateway, "manifest unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, m, h.logger)
}

// Output returns the latest scraped output for /data/{name} as stored.
func (h *Handler) Output(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	name := chi.URLParam(r, ParamName)
	if !snapshots.ValidName(name) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid output name", h.logger)
		return
	}
	if h.snaps == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "output store not configured", h.logger)
		return
	}

	raw, err := h.snaps.Load(name)
	switch {
	case errors.Is(err, snapshots.ErrNotFound):
		writeError(w, r, nethttp.StatusNotFound, "output not found", h.logger)
		return
	case err != nil:
		logging.Warn(loggerFromContext(r, h.logger), "output unreadable", slog.String(logging.FieldPath, name), "error", err)
		writeError(w, r, nethttp.StatusBadGateway, "output unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, raw, h.logger)
}

// NotFound answers unrouted paths with the JSON error envelope.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}
