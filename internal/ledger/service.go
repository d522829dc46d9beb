package ledger

import (
	"context"
	"log/slog"

	"github.com/libreta-app/libreta/internal/shared"
)

// CacheInvalidator lets the ledger drop derived analytics after a write.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// Service orchestrates reconciliation with persistence. All monetary
// derivation happens in the pure functions; the service only loads,
// authorizes, reconciles and stores.
type Service struct {
	repo   Repository
	cfg    Config
	cache  CacheInvalidator
	logger *slog.Logger
}

// NewService constructs a ledger service.
func NewService(repo Repository, cfg Config, cache CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, cache: cache, logger: logger}
}

// Config exposes the reconciliation knobs in use.
func (s *Service) Config() Config {
	return s.cfg
}

// Create reconciles and stores a new sale owned by the caller.
func (s *Service) Create(ctx context.Context, scope shared.Scope, input SaleInput) (*SaleEntry, error) {
	entry, err := Reconcile(s.cfg, input)
	if err != nil {
		return nil, err
	}
	entry.UserID = scope.UserID

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.bump(ctx)
	return created, nil
}

// Update fully recomputes an existing sale from new raw inputs.
func (s *Service) Update(ctx context.Context, scope shared.Scope, id int64, input SaleInput) (*SaleEntry, error) {
	existing, err := s.authorized(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	entry, err := EditSale(s.cfg, *existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.bump(ctx)
	return &entry, nil
}

// RecordPayment applies a partial payment to a sale.
func (s *Service) RecordPayment(ctx context.Context, scope shared.Scope, id int64, amountPaid float64) (*SaleEntry, error) {
	existing, err := s.authorized(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	entry := RecordPayment(s.cfg, *existing, amountPaid)
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.bump(ctx)
	return &entry, nil
}

// MarkPaid forces a sale into the paid state.
func (s *Service) MarkPaid(ctx context.Context, scope shared.Scope, id int64) (*SaleEntry, error) {
	existing, err := s.authorized(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	entry := MarkPaid(*existing)
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.bump(ctx)
	return &entry, nil
}

// Delete removes a sale from the ledger.
func (s *Service) Delete(ctx context.Context, scope shared.Scope, id int64) error {
	if _, err := s.authorized(ctx, scope, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// Get fetches one scope-visible sale.
func (s *Service) Get(ctx context.Context, scope shared.Scope, id int64) (*SaleEntry, error) {
	return s.authorized(ctx, scope, id)
}

// List returns the filtered listing together with its totals strip.
func (s *Service) List(ctx context.Context, scope shared.Scope, filter Filter) ([]SaleEntry, Summary, error) {
	entries, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, Summary{}, err
	}
	return entries, Summarize(entries), nil
}

// ListPending returns the full scope-visible pending backlog, used by
// the payment alert scan.
func (s *Service) ListPending(ctx context.Context, scope shared.Scope) ([]SaleEntry, error) {
	return s.repo.ListPending(ctx, scope)
}

func (s *Service) authorized(ctx context.Context, scope shared.Scope, id int64) (*SaleEntry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanSee(entry.UserID) {
		return nil, shared.ErrForbidden
	}
	return entry, nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("bump analytics cache", slog.Any("error", err))
	}
}
