package analytichttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/internal/analytics"
	"github.com/libreta-app/libreta/internal/cashflow"
	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/shared"
)

type stubSales struct {
	entries []ledger.SaleEntry
}

func (s *stubSales) List(_ context.Context, scope shared.Scope, filter ledger.Filter) ([]ledger.SaleEntry, ledger.Summary, error) {
	var out []ledger.SaleEntry
	for _, e := range s.entries {
		if scope.CanSee(e.UserID) && filter.Match(e) {
			out = append(out, e)
		}
	}
	return out, ledger.Summarize(out), nil
}

type stubExpenses struct{}

func (stubExpenses) List(context.Context, shared.Scope, cashflow.Filter) ([]cashflow.ExpenseEntry, error) {
	return nil, nil
}

func newTestRouter(scope *shared.Scope) http.Handler {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sales := &stubSales{entries: []ledger.SaleEntry{
		{UserID: 1, ProductName: "Pastel", Date: today, Total: 300, Profit: 100},
	}}
	svc := analytics.NewService(sales, stubExpenses{}, nil, analytics.NewCache(nil, 0))
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, nil)

	r := chi.NewRouter()
	if scope != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(shared.ContextWithScope(req.Context(), *scope)))
			})
		})
	}
	r.Route("/dashboard", handler.MountRoutes)
	return r
}

func TestDashboardEndpoint(t *testing.T) {
	router := newTestRouter(&shared.Scope{UserID: 1})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dash analytics.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Equal(t, 1, dash.Summary.Count)
	require.Equal(t, 100.0, dash.Summary.Profit)
}

func TestDashboardRequiresScope(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardCSVEndpoint(t *testing.T) {
	router := newTestRouter(&shared.Scope{UserID: 1})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/export.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, rec.Body.String(), "Ganancia,100.00")
}

func TestTopProductsChartEndpoint(t *testing.T) {
	router := newTestRouter(&shared.Scope{UserID: 1})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/charts/top-products.svg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "<svg")
}
