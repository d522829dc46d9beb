package cashflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/shared"
)

// SalesSource yields the scope-visible sales a cash-flow summary is
// reconciled against. Satisfied by the ledger service.
type SalesSource interface {
	List(ctx context.Context, scope shared.Scope, filter ledger.Filter) ([]ledger.SaleEntry, ledger.Summary, error)
}

// Service orchestrates the expense ledger and the cash-flow summary.
type Service struct {
	repo   Repository
	sales  SalesSource
	cache  ledger.CacheInvalidator
	logger *slog.Logger
}

// NewService constructs a cash-flow service.
func NewService(repo Repository, sales SalesSource, cache ledger.CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, sales: sales, cache: cache, logger: logger}
}

// Create validates and stores a new expense owned by the caller.
func (s *Service) Create(ctx context.Context, scope shared.Scope, input ExpenseInput) (*ExpenseEntry, error) {
	input, err := ValidateExpense(input)
	if err != nil {
		return nil, err
	}
	entry := ExpenseEntry{
		UserID:      scope.UserID,
		Date:        input.Date,
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
	}
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.bump(ctx)
	return created, nil
}

// Delete removes an expense after an ownership check.
func (s *Service) Delete(ctx context.Context, scope shared.Scope, id int64) error {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !scope.CanSee(entry.UserID) {
		return shared.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// List returns the filtered expense listing.
func (s *Service) List(ctx context.Context, scope shared.Scope, filter Filter) ([]ExpenseEntry, error) {
	return s.repo.List(ctx, scope, filter)
}

// Summarize reconciles the period's profit against its expenses. Both
// sides are loaded over the same inclusive date range.
func (s *Service) Summarize(ctx context.Context, scope shared.Scope, from, to *time.Time) (Summary, error) {
	_, salesSummary, err := s.sales.List(ctx, scope, ledger.Filter{DateFrom: from, DateTo: to})
	if err != nil {
		return Summary{}, err
	}
	expenses, err := s.repo.List(ctx, scope, Filter{DateFrom: from, DateTo: to})
	if err != nil {
		return Summary{}, err
	}
	return Reconcile(salesSummary.Profit, expenses), nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("bump analytics cache", slog.Any("error", err))
	}
}
