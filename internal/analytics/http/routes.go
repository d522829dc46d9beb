package analytichttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/libreta-app/libreta/internal/shared"
)

// MountRoutes registers the dashboard endpoints onto the router. The
// export endpoints get a tighter per-user rate limit since they
// recompute full aggregates.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondError(w, http.StatusTooManyRequests, "Demasiadas solicitudes, intenta de nuevo en un momento.")
		}),
	)

	r.Get("/", h.handleDashboard)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/export.csv", h.handleCSV)
		gr.Get("/export.pdf", h.handlePDF)
		gr.Get("/charts/top-products.svg", h.handleTopProductsChart)
		gr.Get("/charts/profit-week.svg", h.handleWeeklyProfitChart)
	})
}

func rateLimitKey(r *http.Request) (string, error) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && sess.UserID() > 0 {
		return "user:" + strconv.FormatInt(sess.UserID(), 10), nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
