package cashflow

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libreta-app/libreta/internal/shared"
)

// Filter narrows an expense listing. Zero values mean "no constraint";
// both date bounds are inclusive.
type Filter struct {
	Category Category
	DateFrom *time.Time
	DateTo   *time.Time
}

// Match reports whether one entry passes the filter.
func (f Filter) Match(e ExpenseEntry) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// Repository defines persistence operations for the expense ledger.
type Repository interface {
	Create(ctx context.Context, entry ExpenseEntry) (*ExpenseEntry, error)
	Get(ctx context.Context, id int64) (*ExpenseEntry, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope shared.Scope, filter Filter) ([]ExpenseEntry, error)
}

// PGRepository provides PostgreSQL backed persistence for expenses.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const expenseColumns = "id, user_id, date, description, category, amount, created_at"

// Create inserts a validated expense and returns it with its identity.
func (r *PGRepository) Create(ctx context.Context, entry ExpenseEntry) (*ExpenseEntry, error) {
	query := `
		INSERT INTO expenses (user_id, date, description, category, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Date,
		entry.Description,
		entry.Category,
		entry.Amount,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Get fetches one expense by ID.
func (r *PGRepository) Get(ctx context.Context, id int64) (*ExpenseEntry, error) {
	query := "SELECT " + expenseColumns + " FROM expenses WHERE id = $1"
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	entries, err := collectExpenses(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, shared.ErrNotFound
	}
	return &entries[0], nil
}

// Delete removes an expense. Expenses are immutable, so deletion is the
// only correction path.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns scope-visible expenses passing the filter, newest first.
func (r *PGRepository) List(ctx context.Context, scope shared.Scope, filter Filter) ([]ExpenseEntry, error) {
	query := "SELECT " + expenseColumns + " FROM expenses"
	var (
		conds []string
		args  []any
	)
	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if !scope.IsAdmin {
		appendCond("user_id = $%d", scope.UserID)
	}
	if filter.Category != "" {
		appendCond("category = $%d", filter.Category)
	}
	if filter.DateFrom != nil {
		appendCond("date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		appendCond("date <= $%d", *filter.DateTo)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectExpenses(rows)
}

func collectExpenses(rows pgx.Rows) ([]ExpenseEntry, error) {
	defer rows.Close()
	var out []ExpenseEntry
	for rows.Next() {
		var e ExpenseEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Description, &e.Category, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
