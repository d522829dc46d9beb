package cashflow

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrValidation indicates an expense input that violates a precondition.
var ErrValidation = errors.New("cashflow: invalid expense input")

// SavingsTargetPercent is the share of period profit the business aims
// to retain after all outflows. Policy-fixed, not configurable.
const SavingsTargetPercent = 0.10

// Summary is the reconciled cash position of one period: aggregated
// profit against categorized outflows, plus the savings-goal check.
type Summary struct {
	Profit                float64 `json:"profit"`
	OperatingExpenseTotal float64 `json:"operating_expense_total"`
	ReinvestmentTotal     float64 `json:"reinvestment_total"`
	TotalOutflow          float64 `json:"total_outflow"`
	Net                   float64 `json:"net"`
	SavingsTarget         float64 `json:"savings_target"`
	SavingsActual         float64 `json:"savings_actual"`
	SavingsShortfall      float64 `json:"savings_shortfall"`
	TargetMet             bool    `json:"target_met"`
}

// Reconcile combines period profit with categorized expenses into a net
// balance and a savings-goal verdict. Pure over its inputs; any
// partition of the expenses by category yields the same net.
func Reconcile(profit float64, expenses []ExpenseEntry) Summary {
	s := Summary{Profit: profit}
	for _, e := range expenses {
		switch e.Category {
		case CategoryReinvestment:
			s.ReinvestmentTotal += e.Amount
		default:
			s.OperatingExpenseTotal += e.Amount
		}
	}
	s.TotalOutflow = s.OperatingExpenseTotal + s.ReinvestmentTotal
	s.Net = profit - s.TotalOutflow
	s.SavingsTarget = profit * SavingsTargetPercent
	s.SavingsActual = math.Max(s.Net, 0)
	s.SavingsShortfall = math.Max(s.SavingsTarget-s.SavingsActual, 0)
	s.TargetMet = profit > 0 && s.SavingsActual >= s.SavingsTarget
	return s
}

// ValidateExpense normalizes and checks a raw expense input.
func ValidateExpense(input ExpenseInput) (ExpenseInput, error) {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return ExpenseInput{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !input.Category.Valid() {
		return ExpenseInput{}, fmt.Errorf("%w: unknown category %q", ErrValidation, input.Category)
	}
	if input.Amount <= 0 {
		return ExpenseInput{}, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	return input, nil
}
