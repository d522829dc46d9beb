package cashflow

import "time"

// Category splits cash outflows between day-to-day operation and money
// put back into the business.
type Category string

const (
	CategoryOperating    Category = "OPERATING"
	CategoryReinvestment Category = "REINVESTMENT"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryOperating || c == CategoryReinvestment
}

// ExpenseEntry is one cash-flow movement. Entries are immutable once
// created; corrections are a delete plus a new entry.
type ExpenseEntry struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Date        time.Time `json:"date" db:"date"`
	Description string    `json:"description" db:"description"`
	Category    Category  `json:"category" db:"category"`
	Amount      float64   `json:"amount" db:"amount"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ExpenseInput carries the raw fields of a new expense.
type ExpenseInput struct {
	Date        time.Time
	Description string
	Category    Category
	Amount      float64
}
