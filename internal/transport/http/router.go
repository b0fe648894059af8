// Package httptransport wires the HTTP surface: public endpoints, the gated
// admin API, and the token-protected maintenance routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accesshandler "vitrina/internal/access/handler"
	cataloghandler "vitrina/internal/catalog/handler"
	"vitrina/internal/gate"
	"vitrina/internal/gate/bridge"
	"vitrina/internal/platform/config"
	"vitrina/internal/platform/health"
	"vitrina/internal/platform/middleware"
	"vitrina/internal/upload"
)

// Deps carries everything the router mounts. Handlers stay thin; business
// logic lives in the services behind them.
type Deps struct {
	Config  *config.Server
	Gate    *gate.Gate
	Catalog *cataloghandler.Handler
	Access  *accesshandler.Handler
	Upload  *upload.Handler
	Health  *health.Handler

	// Dialogs brokers confirm dialogs between the blocking confirm endpoint
	// and the answer endpoint.
	Dialogs *bridge.Live

	Logger *slog.Logger
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(60 * time.Second))

	// Public surface: probes, metrics, the denial view, and client bootstrap.
	d.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get(gate.UnauthorizedPath, NewDenialHandler(d.Logger).HandleDenied)
	r.Get("/api/config", NewConfigHandler(d.Config).HandleConfig)

	// Everything under the gate renders only for authorized identities.
	r.Group(func(r chi.Router) {
		r.Use(d.Gate.Middleware)

		r.Get("/api/theme", HandleTheme)

		bridgeHandler := NewBridgeHandler(d.Dialogs, d.Logger)
		r.Route("/api/bridge", bridgeHandler.Register)

		r.Route("/api/catalog", d.Catalog.Register)
		r.Route("/api", d.Upload.Register)
	})

	// Maintenance surface, shared-token auth rather than the gate.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(d.Config.AdminTokenHash, d.Logger))
		r.Route("/admin/access", d.Access.Register)
	})

	return r
}
