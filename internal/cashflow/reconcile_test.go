package cashflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func expense(category Category, amount float64) ExpenseEntry {
	return ExpenseEntry{Description: "gasto", Category: category, Amount: amount}
}

func TestReconcileNetAndSavings(t *testing.T) {
	// Profits {50, -10, 30} against operating 20 and reinvestment 5.
	summary := Reconcile(70, []ExpenseEntry{
		expense(CategoryOperating, 20),
		expense(CategoryReinvestment, 5),
	})

	require.Equal(t, 20.0, summary.OperatingExpenseTotal)
	require.Equal(t, 5.0, summary.ReinvestmentTotal)
	require.Equal(t, 25.0, summary.TotalOutflow)
	require.Equal(t, 45.0, summary.Net)
	require.Equal(t, 7.0, summary.SavingsTarget)
	require.Equal(t, 45.0, summary.SavingsActual)
	require.Zero(t, summary.SavingsShortfall)
	require.True(t, summary.TargetMet)
}

func TestReconcileNegativeNet(t *testing.T) {
	summary := Reconcile(100, []ExpenseEntry{expense(CategoryOperating, 140)})

	require.Equal(t, -40.0, summary.Net)
	require.Zero(t, summary.SavingsActual)
	require.Equal(t, 10.0, summary.SavingsShortfall)
	require.False(t, summary.TargetMet)
}

func TestReconcileZeroProfitNeverMeetsTarget(t *testing.T) {
	summary := Reconcile(0, nil)

	require.Zero(t, summary.SavingsTarget)
	require.False(t, summary.TargetMet)
}

func TestReconcileLossPeriod(t *testing.T) {
	summary := Reconcile(-30, []ExpenseEntry{expense(CategoryReinvestment, 10)})

	require.Equal(t, -40.0, summary.Net)
	require.Zero(t, summary.SavingsActual)
	require.Zero(t, summary.SavingsShortfall)
	require.False(t, summary.TargetMet)
}

func TestValidateExpense(t *testing.T) {
	cases := []struct {
		name  string
		input ExpenseInput
		valid bool
	}{
		{"ok", ExpenseInput{Description: "Harina", Category: CategoryOperating, Amount: 35}, true},
		{"blank description", ExpenseInput{Description: "  ", Category: CategoryOperating, Amount: 35}, false},
		{"unknown category", ExpenseInput{Description: "Harina", Category: "OTHER", Amount: 35}, false},
		{"zero amount", ExpenseInput{Description: "Harina", Category: CategoryOperating, Amount: 0}, false},
		{"negative amount", ExpenseInput{Description: "Harina", Category: CategoryOperating, Amount: -5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateExpense(tc.input)
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}
