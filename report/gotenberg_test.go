package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/internal/analytics"
	"github.com/libreta-app/libreta/internal/cashflow"
	"github.com/libreta-app/libreta/internal/ledger"
)

func TestRenderHTMLSendsMultipartAndReturnsBody(t *testing.T) {
	var gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	pdf, err := client.RenderHTML(context.Background(), "<html><body>hola</body></html>")
	require.NoError(t, err)
	require.Equal(t, "/forms/chromium/convert/html", gotPath)
	require.Contains(t, gotContentType, "multipart/form-data")
	require.Equal(t, "%PDF-1.7 fake", string(pdf))
}

func TestRenderHTMLPropagatesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RenderHTML(context.Background(), "<html></html>")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Ping(context.Background()))
}

func TestRenderDashboardHTML(t *testing.T) {
	doc := DashboardDocument{
		Dashboard: analytics.Dashboard{
			From: "2025-07-01",
			To:   "2025-07-31",
			Summary: ledger.Summary{
				Count:  3,
				Total:  1250.5,
				Profit: 480,
			},
			TopProducts: []analytics.SeriesPoint{{Label: "Pan dulce", Value: 300}},
			Cashflow: cashflow.Summary{
				Profit:                480,
				OperatingExpenseTotal: 120,
				Net:                   360,
				SavingsTarget:         48,
				SavingsActual:         360,
				TargetMet:             true,
			},
		},
		TopProducts: "<svg></svg>",
		GeneratedAt: "2025-08-01 09:00",
	}

	html, err := RenderDashboardHTML(doc)
	require.NoError(t, err)
	require.Contains(t, html, "Período: 2025-07-01 a 2025-07-31")
	require.Contains(t, html, "$1.250,50")
	require.Contains(t, html, "Productos con mayor ganancia")
	require.Contains(t, html, "<svg></svg>")
	require.NotContains(t, html, "Ganancia por usuario")
}
