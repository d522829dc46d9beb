package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseInput() SaleInput {
	return SaleInput{
		Date:         date(2025, time.March, 10),
		ClientName:   "Marta",
		ProductName:  "Tarta de chocolate",
		CostPerUnit:  100,
		PricePerUnit: 150,
		Quantity:     2,
	}
}

func TestReconcilePaidWithoutExplicitAmount(t *testing.T) {
	input := baseInput()
	input.Status = StatusPaid

	entry, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	require.InDelta(t, 300.0, entry.Total, 1e-9)
	require.InDelta(t, 100.0, entry.Profit, 1e-9)
	require.InDelta(t, 300.0, entry.AmountPaid, 1e-9)
	require.Zero(t, entry.PendingAmount)
	require.Equal(t, StatusPaid, entry.Status)
	require.Nil(t, entry.DueDate)
}

func TestReconcilePendingKeepsBalance(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending
	input.AmountPaid = 100

	entry, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	require.InDelta(t, 200.0, entry.PendingAmount, 1e-9)
	require.InDelta(t, 100.0, entry.AmountPaid, 1e-9)
	require.Equal(t, StatusPending, entry.Status)
}

func TestReconcileDerivedFieldsExact(t *testing.T) {
	input := baseInput()
	input.CostPerUnit = 33.33
	input.PricePerUnit = 47.5
	input.Quantity = 7
	input.Status = StatusPending

	entry, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	require.Equal(t, 47.5*7, entry.Total)
	require.Equal(t, (47.5-33.33)*7, entry.Profit)
}

func TestReconcileOverpaymentClampsPendingToZero(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending
	input.AmountPaid = 500

	entry, err := Reconcile(Config{}, input)
	require.NoError(t, err)
	require.Zero(t, entry.PendingAmount)
}

func TestReconcileClearsDueDateWhenPaid(t *testing.T) {
	due := date(2025, time.April, 1)
	input := baseInput()
	input.Status = StatusPaid
	input.DueDate = &due

	entry, err := Reconcile(Config{}, input)
	require.NoError(t, err)
	require.Nil(t, entry.DueDate)
}

func TestReconcileValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SaleInput)
	}{
		{"empty client", func(in *SaleInput) { in.ClientName = "  " }},
		{"empty product", func(in *SaleInput) { in.ProductName = "" }},
		{"zero quantity", func(in *SaleInput) { in.Quantity = 0 }},
		{"negative quantity", func(in *SaleInput) { in.Quantity = -3 }},
		{"negative cost", func(in *SaleInput) { in.CostPerUnit = -1 }},
		{"unknown status", func(in *SaleInput) { in.Status = "REFUNDED" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := baseInput()
			tc.mutate(&input)
			_, err := Reconcile(Config{}, input)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestReconcileRequireDueDate(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending

	_, err := Reconcile(Config{RequireDueDate: true}, input)
	require.ErrorIs(t, err, ErrValidation)

	due := date(2025, time.April, 1)
	input.DueDate = &due
	entry, err := Reconcile(Config{RequireDueDate: true}, input)
	require.NoError(t, err)
	require.NotNil(t, entry.DueDate)
}

func TestEditSalePreservesIdentity(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending
	existing, err := Reconcile(Config{}, input)
	require.NoError(t, err)
	existing.ID = 42
	existing.UserID = 7
	existing.CreatedAt = date(2025, time.January, 1)

	input.PricePerUnit = 200
	input.Status = StatusPaid
	edited, err := EditSale(Config{}, existing, input)
	require.NoError(t, err)

	require.Equal(t, int64(42), edited.ID)
	require.Equal(t, int64(7), edited.UserID)
	require.Equal(t, existing.CreatedAt, edited.CreatedAt)
	require.InDelta(t, 400.0, edited.Total, 1e-9)
	require.Equal(t, StatusPaid, edited.Status)
}

func TestRecordPaymentSettlesWithinEpsilon(t *testing.T) {
	due := date(2025, time.April, 1)
	input := baseInput()
	input.Status = StatusPending
	input.AmountPaid = 100
	input.DueDate = &due

	sale, err := Reconcile(Config{}, input)
	require.NoError(t, err)
	require.InDelta(t, 200.0, sale.PendingAmount, 1e-9)

	paid := RecordPayment(Config{}, sale, 300)
	require.Zero(t, paid.PendingAmount)
	require.Equal(t, StatusPaid, paid.Status)
	require.Nil(t, paid.DueDate)
	require.InDelta(t, 300.0, paid.AmountPaid, 1e-9)
}

func TestRecordPaymentPartialStaysPending(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending
	sale, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	partial := RecordPayment(Config{}, sale, 120)
	require.Equal(t, StatusPending, partial.Status)
	require.InDelta(t, 180.0, partial.PendingAmount, 1e-9)
}

func TestRecordPaymentNearTotalUsesEpsilon(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending
	sale, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	// 0.005 short of the total sits inside the default tolerance.
	paid := RecordPayment(Config{}, sale, 299.995)
	require.Equal(t, StatusPaid, paid.Status)
	require.Zero(t, paid.PendingAmount)
}

func TestRecordPaymentIdempotentOnceSettled(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending
	sale, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	once := RecordPayment(Config{}, sale, 300)
	twice := RecordPayment(Config{}, once, 300)
	require.Equal(t, once, twice)
}

func TestMarkPaidNeverReducesPayment(t *testing.T) {
	input := baseInput()
	input.Status = StatusPending
	input.AmountPaid = 50
	sale, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	paid := MarkPaid(sale)
	require.Equal(t, StatusPaid, paid.Status)
	require.Zero(t, paid.PendingAmount)
	require.Nil(t, paid.DueDate)
	require.InDelta(t, 300.0, paid.AmountPaid, 1e-9)

	// Overpaid entries keep what was recorded.
	sale.AmountPaid = 320
	paid = MarkPaid(sale)
	require.InDelta(t, 320.0, paid.AmountPaid, 1e-9)
}

func TestPaidToPendingOnlyViaEdit(t *testing.T) {
	input := baseInput()
	input.Status = StatusPaid
	sale, err := Reconcile(Config{}, input)
	require.NoError(t, err)

	input.Status = StatusPending
	input.AmountPaid = 0
	edited, err := EditSale(Config{}, sale, input)
	require.NoError(t, err)
	require.Equal(t, StatusPending, edited.Status)
	require.InDelta(t, 300.0, edited.PendingAmount, 1e-9)
}

func TestSummarizeCountsPendingOnlyForPendingEntries(t *testing.T) {
	pending, err := Reconcile(Config{}, func() SaleInput {
		in := baseInput()
		in.Status = StatusPending
		in.AmountPaid = 100
		return in
	}())
	require.NoError(t, err)

	paid, err := Reconcile(Config{}, func() SaleInput {
		in := baseInput()
		in.Status = StatusPaid
		return in
	}())
	require.NoError(t, err)

	s := Summarize([]SaleEntry{pending, paid})
	require.Equal(t, 2, s.Count)
	require.InDelta(t, 600.0, s.Total, 1e-9)
	require.InDelta(t, 200.0, s.Profit, 1e-9)
	require.InDelta(t, 400.0, s.AmountPaid, 1e-9)
	require.InDelta(t, 200.0, s.PendingAmount, 1e-9)
}
