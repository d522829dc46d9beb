package alerts

import (
	"context"
	"time"

	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/shared"
)

// LedgerSource yields the sales the alert scan runs over. Satisfied by
// the ledger service.
type LedgerSource interface {
	ListPending(ctx context.Context, scope shared.Scope) ([]ledger.SaleEntry, error)
	List(ctx context.Context, scope shared.Scope, filter ledger.Filter) ([]ledger.SaleEntry, ledger.Summary, error)
}

// Report bundles the outlook with its rendered alerts.
type Report struct {
	Outlook Outlook `json:"outlook"`
	Alerts  []Alert `json:"alerts"`
}

// Service assembles alert reports from the ledger.
type Service struct {
	source LedgerSource
	cfg    Config
	now    func() time.Time
}

// NewService constructs an alert service. A nil now falls back to
// time.Now.
func NewService(source LedgerSource, cfg Config, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{source: source, cfg: cfg, now: now}
}

// Report scans the caller's pending backlog and trailing-week profit.
func (s *Service) Report(ctx context.Context, scope shared.Scope) (Report, error) {
	pending, err := s.source.ListPending(ctx, scope)
	if err != nil {
		return Report{}, err
	}
	today := s.now()
	outlook := ScanPayments(s.cfg, pending, today)

	weekProfit := 0.0
	if s.cfg.WeeklyProfitMin != nil {
		from := today.AddDate(0, 0, -7)
		_, summary, err := s.source.List(ctx, scope, ledger.Filter{DateFrom: &from, DateTo: &today})
		if err != nil {
			return Report{}, err
		}
		weekProfit = summary.Profit
	}

	report := Report{Outlook: outlook, Alerts: Generate(s.cfg, outlook, weekProfit)}
	if report.Alerts == nil {
		report.Alerts = []Alert{}
	}
	return report, nil
}
