package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/internal/auth"
	"github.com/libreta-app/libreta/internal/cashflow"
	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/shared"
)

type fakeSales struct {
	entries []ledger.SaleEntry
	calls   int
}

func (f *fakeSales) List(_ context.Context, scope shared.Scope, filter ledger.Filter) ([]ledger.SaleEntry, ledger.Summary, error) {
	f.calls++
	var out []ledger.SaleEntry
	for _, e := range f.entries {
		if scope.CanSee(e.UserID) && filter.Match(e) {
			out = append(out, e)
		}
	}
	return out, ledger.Summarize(out), nil
}

type fakeExpenses struct {
	entries []cashflow.ExpenseEntry
}

func (f *fakeExpenses) List(_ context.Context, scope shared.Scope, filter cashflow.Filter) ([]cashflow.ExpenseEntry, error) {
	var out []cashflow.ExpenseEntry
	for _, e := range f.entries {
		if scope.CanSee(e.UserID) && filter.Match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUsers struct {
	users []auth.User
}

func (f *fakeUsers) ListUsers(context.Context) ([]auth.User, error) {
	return f.users, nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func testDay(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestGetDashboardAggregates(t *testing.T) {
	sales := &fakeSales{entries: []ledger.SaleEntry{
		{UserID: 1, ProductName: "Pastel", Date: testDay(1), Total: 300, Profit: 100, Status: ledger.StatusPaid, AmountPaid: 300},
		{UserID: 1, ProductName: "Pan", Date: testDay(2), Total: 100, Profit: 40, Status: ledger.StatusPending, AmountPaid: 20, PendingAmount: 80},
	}}
	expenses := &fakeExpenses{entries: []cashflow.ExpenseEntry{
		{UserID: 1, Date: testDay(1), Category: cashflow.CategoryOperating, Amount: 30},
	}}
	svc := NewService(sales, expenses, nil, newTestCache(t))

	from, to := testDay(1), testDay(7)
	dash, err := svc.GetDashboard(context.Background(), shared.Scope{UserID: 1}, &from, &to)
	require.NoError(t, err)

	require.Equal(t, 2, dash.Summary.Count)
	require.Equal(t, 140.0, dash.Summary.Profit)
	require.Equal(t, 80.0, dash.Summary.PendingAmount)
	require.Equal(t, "Pastel", dash.TopProducts[0].Label)
	require.Equal(t, 110.0, dash.Cashflow.Net)
	require.Equal(t, 20.0, dash.AverageDailyProfit)
	require.Equal(t, 200.0, dash.AverageTicket)
	require.Empty(t, dash.ProfitByUser)
}

func TestGetDashboardAdminBreakdown(t *testing.T) {
	sales := &fakeSales{entries: []ledger.SaleEntry{
		{UserID: 1, ProductName: "Pastel", Date: testDay(1), Profit: 60},
		{UserID: 2, ProductName: "Pan", Date: testDay(1), Profit: 90},
	}}
	users := &fakeUsers{users: []auth.User{{ID: 1, Username: "ana"}, {ID: 2, Username: "bruno"}}}
	svc := NewService(sales, &fakeExpenses{}, users, newTestCache(t))

	dash, err := svc.GetDashboard(context.Background(), shared.Scope{UserID: 9, IsAdmin: true}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []SeriesPoint{{Label: "bruno", Value: 90}, {Label: "ana", Value: 60}}, dash.ProfitByUser)
}

func TestGetDashboardCachesUntilBump(t *testing.T) {
	sales := &fakeSales{entries: []ledger.SaleEntry{
		{UserID: 1, ProductName: "Pastel", Date: testDay(1), Profit: 50},
	}}
	cache := newTestCache(t)
	svc := NewService(sales, &fakeExpenses{}, nil, cache)
	scope := shared.Scope{UserID: 1}

	_, err := svc.GetDashboard(context.Background(), scope, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, sales.calls)

	// Served from cache: the source is not consulted again.
	_, err = svc.GetDashboard(context.Background(), scope, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, sales.calls)

	require.NoError(t, cache.Bump(context.Background()))
	_, err = svc.GetDashboard(context.Background(), scope, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 2, sales.calls)
}

func TestGetDashboardScopesAreIsolatedInCache(t *testing.T) {
	sales := &fakeSales{entries: []ledger.SaleEntry{
		{UserID: 1, ProductName: "Pastel", Date: testDay(1), Profit: 50},
		{UserID: 2, ProductName: "Pan", Date: testDay(1), Profit: 70},
	}}
	svc := NewService(sales, &fakeExpenses{}, nil, newTestCache(t))

	one, err := svc.GetDashboard(context.Background(), shared.Scope{UserID: 1}, nil, nil)
	require.NoError(t, err)
	two, err := svc.GetDashboard(context.Background(), shared.Scope{UserID: 2}, nil, nil)
	require.NoError(t, err)

	require.Equal(t, 50.0, one.Summary.Profit)
	require.Equal(t, 70.0, two.Summary.Profit)
}
