package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/http/requestutil"
	"github.com/preston-bernstein/sportsboard/internal/logging"
)

// Checker runs the boundary check across all domains.
type Checker interface {
	AutoAll(ctx context.Context) ([]seasons.AutoResult, error)
}

// AdminHandler exposes token-guarded operator endpoints.
type AdminHandler struct {
	checker Checker
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. It returns nil when token is
// empty so callers can skip mounting it.
func NewAdminHandler(checker Checker, token string, logger *slog.Logger) *AdminHandler {
	if token == "" || checker == nil {
		return nil
	}
	return &AdminHandler{checker: checker, token: token, logger: logger}
}

// Check runs the boundary check now instead of waiting for the next poll.
func (h *AdminHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	results, err := h.checker.AutoAll(r.Context())
	if err != nil {
		logging.Error(logger, "admin boundary check failed", err)
		writeError(w, r, http.StatusInternalServerError, "boundary check failed", h.logger)
		return
	}

	changed := 0
	for _, res := range results {
		if res.Changed() {
			changed++
		}
	}
	logging.Info(logger, "admin boundary check complete",
		slog.Int(logging.FieldCount, len(results)),
		slog.Int("changed", changed),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"changed": changed,
		"results": results,
	}, h.logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	want := "Bearer " + h.token
	got := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
