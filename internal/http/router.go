package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/sportsboard/internal/http/handlers"
)

// NewRouter registers the dashboard routes. admin may be nil, in which case
// /admin/check is not mounted. Handlers check their own methods.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	r := chi.NewRouter()
	r.NotFound(handler.NotFound)

	r.HandleFunc("/health", handler.Health)
	r.HandleFunc("/ready", handler.Ready)
	r.Route("/status", func(r chi.Router) {
		r.HandleFunc("/", handler.StatusAll)
		r.HandleFunc("/{"+handlers.ParamDomain+"}", handler.DomainStatus)
	})
	r.Route("/data", func(r chi.Router) {
		r.HandleFunc("/", handler.Outputs)
		r.HandleFunc("/{"+handlers.ParamName+"}", handler.Output)
	})
	if admin != nil {
		r.HandleFunc("/admin/check", admin.Check)
	}
	return r
}
