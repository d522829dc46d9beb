package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libreta-app/libreta/internal/shared"
)

// Repository defines persistence operations for the sales ledger.
type Repository interface {
	Create(ctx context.Context, entry SaleEntry) (*SaleEntry, error)
	Update(ctx context.Context, entry SaleEntry) error
	Get(ctx context.Context, id int64) (*SaleEntry, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, scope shared.Scope, filter Filter) ([]SaleEntry, error)
	ListPending(ctx context.Context, scope shared.Scope) ([]SaleEntry, error)
}

// PGRepository provides PostgreSQL backed persistence for the ledger.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const saleColumns = `id, user_id, client_id, date, client_name, product_name,
	cost_per_unit, price_per_unit, quantity, total, profit, status,
	payment_type, amount_paid, pending_amount, due_date, notes, created_at, updated_at`

// Create inserts a reconciled entry and returns it with its identity.
func (r *PGRepository) Create(ctx context.Context, entry SaleEntry) (*SaleEntry, error) {
	query := `
		INSERT INTO sales (
			user_id, client_id, date, client_name, product_name,
			cost_per_unit, price_per_unit, quantity, total, profit, status,
			payment_type, amount_paid, pending_amount, due_date, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		entry.UserID,
		optionalID(entry.ClientID),
		entry.Date,
		entry.ClientName,
		entry.ProductName,
		entry.CostPerUnit,
		entry.PricePerUnit,
		entry.Quantity,
		entry.Total,
		entry.Profit,
		entry.Status,
		entry.PaymentType,
		entry.AmountPaid,
		entry.PendingAmount,
		optionalDate(entry.DueDate),
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update replaces every mutable column of an entry. Edits are full
// recomputations, so the write is a full replace as well.
func (r *PGRepository) Update(ctx context.Context, entry SaleEntry) error {
	query := `
		UPDATE sales SET
			client_id = $2, date = $3, client_name = $4, product_name = $5,
			cost_per_unit = $6, price_per_unit = $7, quantity = $8,
			total = $9, profit = $10, status = $11, payment_type = $12,
			amount_paid = $13, pending_amount = $14, due_date = $15,
			notes = $16, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		entry.ID,
		optionalID(entry.ClientID),
		entry.Date,
		entry.ClientName,
		entry.ProductName,
		entry.CostPerUnit,
		entry.PricePerUnit,
		entry.Quantity,
		entry.Total,
		entry.Profit,
		entry.Status,
		entry.PaymentType,
		entry.AmountPaid,
		entry.PendingAmount,
		optionalDate(entry.DueDate),
		entry.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Get fetches one entry by ID.
func (r *PGRepository) Get(ctx context.Context, id int64) (*SaleEntry, error) {
	query := "SELECT " + saleColumns + " FROM sales WHERE id = $1"
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	entries, err := collectSales(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, shared.ErrNotFound
	}
	return &entries[0], nil
}

// Delete removes an entry; it simply disappears from future aggregations.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns scope-visible entries passing the filter, newest first.
// The SQL predicates mirror Filter.Match exactly.
func (r *PGRepository) List(ctx context.Context, scope shared.Scope, filter Filter) ([]SaleEntry, error) {
	query := "SELECT " + saleColumns + " FROM sales"
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
	if filter.ClientName != "" {
		appendCond("client_name ILIKE '%%' || $%d || '%%'", filter.ClientName)
	}
	if filter.Status != "" {
		appendCond("status = $%d", filter.Status)
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
	return collectSales(rows)
}

// ListPending returns every scope-visible pending entry regardless of
// date; the alert generator scans the full backlog.
func (r *PGRepository) ListPending(ctx context.Context, scope shared.Scope) ([]SaleEntry, error) {
	return r.List(ctx, scope, Filter{Status: StatusPending})
}

func collectSales(rows pgx.Rows) ([]SaleEntry, error) {
	defer rows.Close()
	var out []SaleEntry
	for rows.Next() {
		var (
			e        SaleEntry
			clientID pgtype.Int8
			dueDate  pgtype.Date
		)
		if err := rows.Scan(
			&e.ID, &e.UserID, &clientID, &e.Date, &e.ClientName, &e.ProductName,
			&e.CostPerUnit, &e.PricePerUnit, &e.Quantity, &e.Total, &e.Profit, &e.Status,
			&e.PaymentType, &e.AmountPaid, &e.PendingAmount, &dueDate, &e.Notes,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if clientID.Valid {
			id := clientID.Int64
			e.ClientID = &id
		}
		if dueDate.Valid {
			d := dueDate.Time
			e.DueDate = &d
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func optionalID(id *int64) pgtype.Int8 {
	if id == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *id, Valid: true}
}

func optionalDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

var _ Repository = (*PGRepository)(nil)
