package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceFromCost(t *testing.T) {
	quote, err := PriceFromCost(Config{}, 50, 20, 3)
	require.NoError(t, err)

	require.InDelta(t, 60.0, quote.Price, 1e-9)
	require.InDelta(t, 10.0, quote.ProfitPerUnit, 1e-9)
	require.InDelta(t, 30.0, quote.ProfitTotal, 1e-9)
	require.InDelta(t, 20.0, quote.MarginUsed, 1e-9)
	require.Equal(t, 3, quote.Quantity)
}

func TestPriceFromCostRejectsNonPositiveInputs(t *testing.T) {
	_, err := PriceFromCost(Config{}, 0, 20, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = PriceFromCost(Config{}, 50, 20, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = PriceFromCost(Config{}, -5, 20, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCostFromPrice(t *testing.T) {
	quote, err := CostFromPrice(Config{}, 60, 20, 3)
	require.NoError(t, err)

	require.InDelta(t, 50.0, quote.Cost, 1e-9)
	require.InDelta(t, 10.0, quote.ProfitPerUnit, 1e-9)
	require.InDelta(t, 30.0, quote.ProfitTotal, 1e-9)
	require.InDelta(t, 20.0, quote.MarginUsed, 1e-9)
}

func TestCostFromPriceRejectsNonPositivePrice(t *testing.T) {
	_, err := CostFromPrice(Config{}, 0, 20, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarginFloorRejectsByDefault(t *testing.T) {
	cfg := Config{MinMarginPercent: 30}

	_, err := PriceFromCost(cfg, 100, 10, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	quote, err := PriceFromCost(cfg, 100, 30, 1)
	require.NoError(t, err)
	require.InDelta(t, 130.0, quote.Price, 1e-9)
}

func TestMarginFloorClampsWhenConfigured(t *testing.T) {
	cfg := Config{MinMarginPercent: 30, ClampToFloor: true}

	quote, err := PriceFromCost(cfg, 100, 10, 2)
	require.NoError(t, err)
	require.InDelta(t, 130.0, quote.Price, 1e-9)
	require.InDelta(t, 30.0, quote.MarginUsed, 1e-9)
	require.InDelta(t, 60.0, quote.ProfitTotal, 1e-9)
}

func TestZeroMarginAllowedAtDefaultFloor(t *testing.T) {
	quote, err := PriceFromCost(Config{}, 80, 0, 1)
	require.NoError(t, err)
	require.InDelta(t, 80.0, quote.Price, 1e-9)
	require.InDelta(t, 0.0, quote.ProfitTotal, 1e-9)
}
