package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/libreta-app/libreta/internal/auth"
	"github.com/libreta-app/libreta/internal/cashflow"
	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/shared"
)

// SalesSource yields the scope-visible sales the dashboard aggregates.
// Satisfied by the ledger service.
type SalesSource interface {
	List(ctx context.Context, scope shared.Scope, filter ledger.Filter) ([]ledger.SaleEntry, ledger.Summary, error)
}

// ExpenseSource yields the scope-visible expenses over a range.
// Satisfied by the cash-flow service.
type ExpenseSource interface {
	List(ctx context.Context, scope shared.Scope, filter cashflow.Filter) ([]cashflow.ExpenseEntry, error)
}

// UserDirectory resolves owner IDs to display names for the per-user
// profit breakdown. Satisfied by the auth service.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]auth.User, error)
}

// Dashboard is the full derived-metric bundle for one period.
type Dashboard struct {
	From               string             `json:"from,omitempty"`
	To                 string             `json:"to,omitempty"`
	Summary            ledger.Summary     `json:"summary"`
	TopProducts        []SeriesPoint      `json:"top_products"`
	ProfitByWeek       []SeriesPoint      `json:"profit_by_week"`
	ProfitByUser       []SeriesPoint      `json:"profit_by_user,omitempty"`
	AverageDailyProfit float64            `json:"average_daily_profit"`
	AverageTicket      float64            `json:"average_ticket"`
	Cashflow           cashflow.Summary   `json:"cashflow"`
}

// Service assembles dashboards from the ledgers, caching the result
// until the next write bumps the cache version.
type Service struct {
	sales    SalesSource
	expenses ExpenseSource
	users    UserDirectory
	cache    *Cache
}

// NewService wires the dashboard sources with the cache helper. A nil
// users directory disables the per-user breakdown.
func NewService(sales SalesSource, expenses ExpenseSource, users UserDirectory, cache *Cache) *Service {
	return &Service{sales: sales, expenses: expenses, users: users, cache: cache}
}

const dayLayout = "2006-01-02"

// GetDashboard computes or fetches the dashboard over an inclusive date
// range. Nil bounds mean the whole ledger.
func (s *Service) GetDashboard(ctx context.Context, scope shared.Scope, from, to *time.Time) (Dashboard, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, scope, from, to)
	}

	key, err := s.cache.BuildKey(ctx, keyDashboard(scope, formatBound(from), formatBound(to)))
	if err != nil {
		return Dashboard{}, err
	}
	var dash Dashboard
	if err := s.cache.FetchJSON(ctx, key, &dash, loader); err != nil {
		return Dashboard{}, err
	}
	return dash, nil
}

func (s *Service) build(ctx context.Context, scope shared.Scope, from, to *time.Time) (Dashboard, error) {
	var (
		sales    []ledger.SaleEntry
		summary  ledger.Summary
		expenses []cashflow.ExpenseEntry
		names    map[int64]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, summary, err = s.sales.List(gctx, scope, ledger.Filter{DateFrom: from, DateTo: to})
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.List(gctx, scope, cashflow.Filter{DateFrom: from, DateTo: to})
		return err
	})
	if scope.IsAdmin && s.users != nil {
		g.Go(func() error {
			users, err := s.users.ListUsers(gctx)
			if err != nil {
				return err
			}
			names = make(map[int64]string, len(users))
			for _, u := range users {
				names[u.ID] = u.Username
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	dash := Dashboard{
		From:               formatBound(from),
		To:                 formatBound(to),
		Summary:            summary,
		TopProducts:        TopProductsByProfit(sales, DefaultTopProducts),
		ProfitByWeek:       ProfitByWeek(sales),
		AverageDailyProfit: AverageDailyProfit(sales, from, to),
		AverageTicket:      AverageTicket(sales),
		Cashflow:           cashflow.Reconcile(summary.Profit, expenses),
	}
	if dash.TopProducts == nil {
		dash.TopProducts = []SeriesPoint{}
	}
	if dash.ProfitByWeek == nil {
		dash.ProfitByWeek = []SeriesPoint{}
	}
	if scope.IsAdmin {
		dash.ProfitByUser = ProfitByUser(sales, names)
	}
	return dash, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dayLayout)
}
