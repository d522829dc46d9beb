package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/internal/ledger"
)

var today = time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)

func pendingSale(due time.Time, pending float64) ledger.SaleEntry {
	return ledger.SaleEntry{
		Status:        ledger.StatusPending,
		DueDate:       &due,
		PendingAmount: pending,
	}
}

func TestScanPaymentsOverdueNotUpcoming(t *testing.T) {
	yesterday := today.AddDate(0, 0, -1)
	outlook := ScanPayments(Config{}, []ledger.SaleEntry{pendingSale(yesterday, 120)}, today)

	require.Len(t, outlook.Overdue, 1)
	require.Empty(t, outlook.Upcoming)
	require.Equal(t, 120.0, outlook.OverdueTotal)
}

func TestScanPaymentsWindow(t *testing.T) {
	entries := []ledger.SaleEntry{
		pendingSale(today, 10),                  // due today: upcoming
		pendingSale(today.AddDate(0, 0, 7), 20), // horizon edge: upcoming
		pendingSale(today.AddDate(0, 0, 8), 40), // beyond horizon: neither
	}
	outlook := ScanPayments(Config{}, entries, today)

	require.Empty(t, outlook.Overdue)
	require.Len(t, outlook.Upcoming, 2)
	require.Equal(t, 30.0, outlook.UpcomingTotal)
}

func TestScanPaymentsIgnoresUndatedAndPaid(t *testing.T) {
	paid := pendingSale(today.AddDate(0, 0, -3), 0)
	paid.Status = ledger.StatusPaid
	undated := ledger.SaleEntry{Status: ledger.StatusPending, PendingAmount: 50}

	outlook := ScanPayments(Config{}, []ledger.SaleEntry{paid, undated}, today)
	require.Empty(t, outlook.Overdue)
	require.Empty(t, outlook.Upcoming)
}

func TestScanPaymentsCustomHorizon(t *testing.T) {
	entries := []ledger.SaleEntry{pendingSale(today.AddDate(0, 0, 5), 15)}

	require.Len(t, ScanPayments(Config{HorizonDays: 2}, entries, today).Upcoming, 0)
	require.Len(t, ScanPayments(Config{HorizonDays: 5}, entries, today).Upcoming, 1)
}

func TestGenerateLevels(t *testing.T) {
	outlook := Outlook{
		Overdue:      []ledger.SaleEntry{{}},
		Upcoming:     []ledger.SaleEntry{{}, {}},
		OverdueTotal: 100,
	}
	out := Generate(Config{}, outlook, 0)

	require.Len(t, out, 2)
	require.Equal(t, LevelDanger, out[0].Level)
	require.Equal(t, LevelWarning, out[1].Level)
}

func TestGenerateEmptyOutlook(t *testing.T) {
	require.Empty(t, Generate(Config{}, Outlook{}, 0))
}

func TestGenerateWeeklyProfitFloor(t *testing.T) {
	floor := 500.0
	cfg := Config{WeeklyProfitMin: &floor}

	out := Generate(cfg, Outlook{}, 320)
	require.Len(t, out, 1)
	require.Equal(t, LevelWarning, out[0].Level)
	require.Equal(t, "Ganancia semanal baja", out[0].Title)

	require.Empty(t, Generate(cfg, Outlook{}, 800))
	require.Empty(t, Generate(Config{}, Outlook{}, 320))
}
