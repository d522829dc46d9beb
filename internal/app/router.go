package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/libreta-app/libreta/internal/alerts"
	analytichttp "github.com/libreta-app/libreta/internal/analytics/http"
	"github.com/libreta-app/libreta/internal/auth"
	"github.com/libreta-app/libreta/internal/cashflow"
	"github.com/libreta-app/libreta/internal/catalog"
	"github.com/libreta-app/libreta/internal/clients"
	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/observability"
	"github.com/libreta-app/libreta/internal/pricing"
	"github.com/libreta-app/libreta/internal/shared"
	"github.com/libreta-app/libreta/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	AuthHandler      *auth.Handler
	ClientsHandler   *clients.Handler
	CatalogHandler   *catalog.Handler
	PricingHandler   *pricing.Handler
	LedgerHandler    *ledger.Handler
	CashflowHandler  *cashflow.Handler
	AnalyticsHandler *analytichttp.Handler
	AlertsHandler    *alerts.Handler
	JobsHandler      *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with Libreta defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Route("/clients", params.ClientsHandler.MountRoutes)
		r.Route("/products", params.CatalogHandler.MountRoutes)
		r.Route("/pricing", params.PricingHandler.MountRoutes)
		r.Route("/sales", params.LedgerHandler.MountRoutes)
		r.Route("/cashflow", params.CashflowHandler.MountRoutes)
		r.Route("/dashboard", params.AnalyticsHandler.MountRoutes)
		r.Route("/alerts", params.AlertsHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Route("/users", params.AuthHandler.MountUserRoutes)
			if params.JobsHandler != nil {
				r.Route("/jobs", params.JobsHandler.MountRoutes)
			}
		})
	})

	return r
}
