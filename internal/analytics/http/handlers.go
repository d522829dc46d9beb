package analytichttp

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/libreta-app/libreta/internal/analytics"
	"github.com/libreta-app/libreta/internal/analytics/export"
	"github.com/libreta-app/libreta/internal/analytics/svg"
	"github.com/libreta-app/libreta/internal/shared"
	"github.com/libreta-app/libreta/report"
)

const dayLayout = "2006-01-02"

// Handler serves the dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *analytics.Service
	pdf     *report.Client
}

// NewHandler builds a Handler instance. The PDF client may be nil, in
// which case the PDF export responds with 503.
func NewHandler(logger *slog.Logger, service *analytics.Service, pdf *report.Client) *Handler {
	return &Handler{logger: logger, service: service, pdf: pdf}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	_, dash, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	shared.RespondJSON(w, http.StatusOK, dash)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	_, dash, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resumen.csv"`)
	if err := export.WriteDashboardCSV(w, dash); err != nil {
		h.logger.Error("write dashboard csv", slog.Any("error", err))
	}
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		shared.RespondError(w, http.StatusServiceUnavailable, "Exportación a PDF no disponible.")
		return
	}
	_, dash, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}

	doc := report.DashboardDocument{
		Dashboard:   dash,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	}
	if len(dash.TopProducts) > 0 {
		values, labels := splitSeries(dash.TopProducts)
		if markup, err := svg.Bars(0, 0, values, labels, svg.BarOpts{Title: "Ganancia por producto"}); err == nil {
			doc.TopProducts = markup
		}
	}
	if len(dash.ProfitByWeek) > 0 {
		values, labels := splitSeries(dash.ProfitByWeek)
		if markup, err := svg.Line(0, 0, values, labels, svg.LineOpts{Title: "Ganancia semanal", ShowDots: true}); err == nil {
			doc.WeeklyChart = markup
		}
	}

	html, err := report.RenderDashboardHTML(doc)
	if err != nil {
		h.logger.Error("render dashboard document", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	pdf, err := h.pdf.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("convert dashboard pdf", slog.Any("error", err))
		shared.RespondError(w, http.StatusBadGateway, "No se pudo generar el PDF.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resumen.pdf"`)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleTopProductsChart(w http.ResponseWriter, r *http.Request) {
	_, dash, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	if len(dash.TopProducts) == 0 {
		shared.RespondError(w, http.StatusNotFound, "Sin datos para graficar.")
		return
	}
	values, labels := splitSeries(dash.TopProducts)
	markup, err := svg.Bars(0, 0, values, labels, svg.BarOpts{
		Title:       "Ganancia por producto",
		Description: "Productos con mayor ganancia del período",
	})
	if err != nil {
		h.logger.Error("render top products chart", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeSVG(w, markup)
}

func (h *Handler) handleWeeklyProfitChart(w http.ResponseWriter, r *http.Request) {
	_, dash, ok := h.loadDashboard(w, r)
	if !ok {
		return
	}
	if len(dash.ProfitByWeek) == 0 {
		shared.RespondError(w, http.StatusNotFound, "Sin datos para graficar.")
		return
	}
	values, labels := splitSeries(dash.ProfitByWeek)
	markup, err := svg.Line(0, 0, values, labels, svg.LineOpts{
		Title:       "Ganancia semanal",
		Description: "Ganancia agrupada por semana ISO",
		ShowDots:    true,
	})
	if err != nil {
		h.logger.Error("render weekly profit chart", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeSVG(w, markup)
}

// loadDashboard resolves the scope and date range and fetches the
// dashboard. Without explicit bounds it defaults to month-to-date.
func (h *Handler) loadDashboard(w http.ResponseWriter, r *http.Request) (shared.Scope, analytics.Dashboard, bool) {
	scope, ok := shared.ScopeFromContext(r.Context())
	if !ok {
		shared.RespondError(w, http.StatusUnauthorized, "Debes iniciar sesión.")
		return shared.Scope{}, analytics.Dashboard{}, false
	}

	q := r.URL.Query()
	from := parseOptionalDay(q.Get("date_from"))
	to := parseOptionalDay(q.Get("date_to"))
	if from == nil && to == nil {
		now := time.Now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		from, to = &first, &today
	}

	dash, err := h.service.GetDashboard(r.Context(), scope, from, to)
	if err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return shared.Scope{}, analytics.Dashboard{}, false
	}
	return scope, dash, true
}

func splitSeries(points []analytics.SeriesPoint) ([]float64, []string) {
	values := make([]float64, 0, len(points))
	labels := make([]string, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
		labels = append(labels, p.Label)
	}
	return values, labels
}

func writeSVG(w http.ResponseWriter, markup template.HTML) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(markup))
}

func parseOptionalDay(s string) *time.Time {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
