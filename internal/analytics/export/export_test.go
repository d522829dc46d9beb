package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/internal/analytics"
	"github.com/libreta-app/libreta/internal/ledger"
)

func TestWriteDashboardCSV(t *testing.T) {
	dash := analytics.Dashboard{
		From:    "2025-07-01",
		To:      "2025-07-31",
		Summary: ledger.Summary{Count: 2, Total: 400, Profit: 140, AmountPaid: 320, PendingAmount: 80},
		TopProducts: []analytics.SeriesPoint{
			{Label: "Pastel", Value: 100},
			{Label: "Pan", Value: 40},
		},
		ProfitByWeek: []analytics.SeriesPoint{{Label: "2025-W27", Value: 140}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDashboardCSV(&buf, dash))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Métrica,Valor\n"))
	require.Contains(t, out, "Ganancia,140.00")
	require.Contains(t, out, "Pastel,100.00")
	require.Contains(t, out, "2025-W27,140.00")
	require.NotContains(t, out, "Usuario")
}
