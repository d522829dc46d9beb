package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a violated positivity or minimum constraint.
var ErrInvalidInput = errors.New("pricing: invalid input")

// DefaultMinMarginPercent is the margin floor applied when none is configured.
const DefaultMinMarginPercent = 0.0

// Config controls the calculator's margin floor policy.
type Config struct {
	// MinMarginPercent is the lowest margin the calculator accepts.
	MinMarginPercent float64
	// ClampToFloor raises a below-floor margin to the floor instead of
	// rejecting it.
	ClampToFloor bool
}

// Quote is the result of a calculator run.
type Quote struct {
	Cost          float64 `json:"cost"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	ProfitPerUnit float64 `json:"profit_unit"`
	ProfitTotal   float64 `json:"profit_total"`
	MarginUsed    float64 `json:"margin"`
}

// PriceFromCost derives the sale price from a unit cost and a margin
// percentage.
func PriceFromCost(cfg Config, cost, marginPercent float64, quantity int) (Quote, error) {
	if cost <= 0 {
		return Quote{}, fmt.Errorf("%w: cost must be positive", ErrInvalidInput)
	}
	margin, err := cfg.resolveMargin(marginPercent)
	if err != nil {
		return Quote{}, err
	}
	if quantity <= 0 {
		return Quote{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	price := cost * (1 + margin/100.0)
	return buildQuote(cost, price, quantity), nil
}

// CostFromPrice derives the unit cost backwards from a target sale price
// and a margin percentage.
func CostFromPrice(cfg Config, price, marginPercent float64, quantity int) (Quote, error) {
	if price <= 0 {
		return Quote{}, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	margin, err := cfg.resolveMargin(marginPercent)
	if err != nil {
		return Quote{}, err
	}
	if quantity <= 0 {
		return Quote{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	cost := price / (1 + margin/100.0)
	return buildQuote(cost, price, quantity), nil
}

func (c Config) resolveMargin(marginPercent float64) (float64, error) {
	floor := c.MinMarginPercent
	if floor < 0 {
		floor = DefaultMinMarginPercent
	}
	if marginPercent >= floor {
		return marginPercent, nil
	}
	if c.ClampToFloor {
		return floor, nil
	}
	return 0, fmt.Errorf("%w: margin must be at least %.2f%%", ErrInvalidInput, floor)
}

func buildQuote(cost, price float64, quantity int) Quote {
	profitUnit := price - cost
	marginUsed := 0.0
	if cost > 0 {
		marginUsed = profitUnit / cost * 100.0
	}
	return Quote{
		Cost:          cost,
		Price:         price,
		Quantity:      quantity,
		ProfitPerUnit: profitUnit,
		ProfitTotal:   profitUnit * float64(quantity),
		MarginUsed:    marginUsed,
	}
}
