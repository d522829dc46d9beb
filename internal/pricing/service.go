package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/libreta-app/libreta/internal/catalog"
)

// Catalog is the slice of the product catalog the calculator needs for
// its save-to-catalog side effect.
type Catalog interface {
	Upsert(ctx context.Context, name string, cost, price float64) (*catalog.Product, error)
}

// Mode selects the calculator direction.
type Mode string

const (
	ModePriceFromCost Mode = "price_from_cost"
	ModeCostFromPrice Mode = "cost_from_price"
)

// Request carries one calculator invocation.
type Request struct {
	Mode          Mode
	Cost          float64
	Price         float64
	MarginPercent float64
	Quantity      int
	ProductName   string
	SaveToCatalog bool
}

// Service runs the calculator and optionally stores the result.
type Service struct {
	cfg     Config
	catalog Catalog
}

// NewService constructs a pricing service.
func NewService(cfg Config, cat Catalog) *Service {
	return &Service{cfg: cfg, catalog: cat}
}

// Calculate produces a quote and, when requested, upserts the catalog
// entry with the computed cost/price. The upsert happens only after the
// quote succeeded, so a rejected margin never touches the catalog.
func (s *Service) Calculate(ctx context.Context, req Request) (Quote, error) {
	var (
		quote Quote
		err   error
	)
	switch req.Mode {
	case ModeCostFromPrice:
		quote, err = CostFromPrice(s.cfg, req.Price, req.MarginPercent, req.Quantity)
	case ModePriceFromCost, "":
		quote, err = PriceFromCost(s.cfg, req.Cost, req.MarginPercent, req.Quantity)
	default:
		return Quote{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}
	if err != nil {
		return Quote{}, err
	}

	if req.SaveToCatalog {
		name := strings.TrimSpace(req.ProductName)
		if name == "" {
			return Quote{}, fmt.Errorf("%w: product name required to save to catalog", ErrInvalidInput)
		}
		if s.catalog == nil {
			return Quote{}, fmt.Errorf("%w: catalog unavailable", ErrInvalidInput)
		}
		if _, err := s.catalog.Upsert(ctx, name, quote.Cost, quote.Price); err != nil {
			return Quote{}, err
		}
	}
	return quote, nil
}
