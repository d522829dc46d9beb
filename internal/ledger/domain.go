package ledger

import "time"

// Status enumerates the two payment states of a sale.
type Status string

const (
	StatusPaid    Status = "PAID"
	StatusPending Status = "PENDING"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusPending
}

// SaleEntry is one transaction line of the sales ledger. The monetary
// fields total, profit, amount_paid and pending_amount are always
// derived by the reconciliation rules, never entered directly.
type SaleEntry struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"user_id" db:"user_id"`
	Date          time.Time  `json:"date" db:"date"`
	ClientID      *int64     `json:"client_id,omitempty" db:"client_id"`
	ClientName    string     `json:"client_name" db:"client_name"`
	ProductName   string     `json:"product_name" db:"product_name"`
	CostPerUnit   float64    `json:"cost_per_unit" db:"cost_per_unit"`
	PricePerUnit  float64    `json:"price_per_unit" db:"price_per_unit"`
	Quantity      int        `json:"quantity" db:"quantity"`
	Total         float64    `json:"total" db:"total"`
	Profit        float64    `json:"profit" db:"profit"`
	Status        Status     `json:"status" db:"status"`
	PaymentType   string     `json:"payment_type" db:"payment_type"`
	AmountPaid    float64    `json:"amount_paid" db:"amount_paid"`
	PendingAmount float64    `json:"pending_amount" db:"pending_amount"`
	DueDate       *time.Time `json:"due_date,omitempty" db:"due_date"`
	Notes         string     `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// SaleInput carries the raw fields a sale is reconciled from. Both
// creation and edits go through the same full recomputation.
type SaleInput struct {
	Date         time.Time
	ClientID     *int64
	ClientName   string
	ProductName  string
	CostPerUnit  float64
	PricePerUnit float64
	Quantity     int
	Status       Status
	PaymentType  string
	AmountPaid   float64
	DueDate      *time.Time
	Notes        string
}

// Summary is the totals strip shown above the ledger listing.
type Summary struct {
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
	Profit        float64 `json:"profit"`
	AmountPaid    float64 `json:"amount_paid"`
	PendingAmount float64 `json:"pending_amount"`
}

// Summarize sums the monetary columns of a set of entries. The pending
// column only counts entries that are still pending.
func Summarize(entries []SaleEntry) Summary {
	s := Summary{Count: len(entries)}
	for _, e := range entries {
		s.Total += e.Total
		s.Profit += e.Profit
		s.AmountPaid += e.AmountPaid
		if e.Status == StatusPending {
			s.PendingAmount += e.PendingAmount
		}
	}
	return s
}
