package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrValidation indicates a sale input that violates a precondition. No
// derived field is written when reconciliation fails.
var ErrValidation = errors.New("ledger: invalid sale input")

// DefaultPaymentEpsilon is the monetary tolerance below which a pending
// balance counts as fully settled.
const DefaultPaymentEpsilon = 0.01

// DefaultPaymentType mirrors the historic default of the ledger forms.
const DefaultPaymentType = "Contado"

// Config holds the reconciliation knobs.
type Config struct {
	// PaymentEpsilon absorbs floating rounding when deciding whether a
	// balance is settled. Zero means DefaultPaymentEpsilon.
	PaymentEpsilon float64
	// RequireDueDate makes a due date mandatory for pending sales.
	RequireDueDate bool
}

func (c Config) epsilon() float64 {
	if c.PaymentEpsilon > 0 {
		return c.PaymentEpsilon
	}
	return DefaultPaymentEpsilon
}

// Reconcile validates a raw sale input and computes every derived field:
// total, profit, amount paid, pending amount and the due date's
// presence. Creation and edits both reduce to this one computation; an
// edit is never a delta.
func Reconcile(cfg Config, input SaleInput) (SaleEntry, error) {
	clientName := strings.TrimSpace(input.ClientName)
	productName := strings.TrimSpace(input.ProductName)

	if clientName == "" {
		return SaleEntry{}, fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if productName == "" {
		return SaleEntry{}, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if input.Quantity <= 0 {
		return SaleEntry{}, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}
	if input.CostPerUnit < 0 || input.PricePerUnit < 0 {
		return SaleEntry{}, fmt.Errorf("%w: unit amounts cannot be negative", ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = StatusPaid
	}
	if !status.Valid() {
		return SaleEntry{}, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}

	paymentType := strings.TrimSpace(input.PaymentType)
	if paymentType == "" {
		paymentType = DefaultPaymentType
	}

	total := input.PricePerUnit * float64(input.Quantity)
	profit := (input.PricePerUnit - input.CostPerUnit) * float64(input.Quantity)

	entry := SaleEntry{
		Date:         input.Date,
		ClientID:     input.ClientID,
		ClientName:   clientName,
		ProductName:  productName,
		CostPerUnit:  input.CostPerUnit,
		PricePerUnit: input.PricePerUnit,
		Quantity:     input.Quantity,
		Total:        total,
		Profit:       profit,
		Status:       status,
		PaymentType:  paymentType,
		AmountPaid:   input.AmountPaid,
		Notes:        strings.TrimSpace(input.Notes),
	}

	switch status {
	case StatusPaid:
		// A paid sale with no explicit amount counts as paid in full.
		// The due date never survives the paid state.
		if entry.AmountPaid <= 0 {
			entry.AmountPaid = total
		}
		entry.PendingAmount = 0
		entry.DueDate = nil
	case StatusPending:
		if cfg.RequireDueDate && input.DueDate == nil {
			return SaleEntry{}, fmt.Errorf("%w: due date is required for pending sales", ErrValidation)
		}
		entry.PendingAmount = math.Max(total-entry.AmountPaid, 0)
		entry.DueDate = input.DueDate
	}

	return entry, nil
}

// EditSale recomputes an existing entry from new raw inputs, preserving
// only its identity and ownership.
func EditSale(cfg Config, existing SaleEntry, input SaleInput) (SaleEntry, error) {
	entry, err := Reconcile(cfg, input)
	if err != nil {
		return SaleEntry{}, err
	}
	entry.ID = existing.ID
	entry.UserID = existing.UserID
	entry.CreatedAt = existing.CreatedAt
	return entry, nil
}

// RecordPayment applies a partial-payment update. This is the only path
// that can flip the status on a monetary threshold: once the remaining
// balance drops inside the epsilon tolerance the sale becomes paid and
// the due date is cleared.
func RecordPayment(cfg Config, existing SaleEntry, amountPaid float64) SaleEntry {
	entry := existing
	entry.AmountPaid = amountPaid
	entry.PendingAmount = math.Max(entry.Total-amountPaid, 0)

	if entry.PendingAmount <= cfg.epsilon() {
		entry.Status = StatusPaid
		entry.PendingAmount = 0
		entry.DueDate = nil
	} else {
		entry.Status = StatusPending
	}
	return entry
}

// MarkPaid forces the paid state regardless of the remaining balance. A
// previously recorded payment is never reduced; the amount paid is
// raised to the total only when it was below it.
func MarkPaid(existing SaleEntry) SaleEntry {
	entry := existing
	entry.Status = StatusPaid
	entry.PendingAmount = 0
	entry.DueDate = nil
	if entry.AmountPaid < entry.Total {
		entry.AmountPaid = entry.Total
	}
	return entry
}
