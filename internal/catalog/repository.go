package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libreta-app/libreta/internal/shared"
)

// ErrAlreadyExists indicates a duplicate product name.
var ErrAlreadyExists = errors.New("catalog: product already exists")

// Repository defines persistence operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Upsert(ctx context.Context, name string, cost, price float64) (*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, nameFilter string) ([]Product, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository provides PostgreSQL backed persistence for the catalog.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const productColumns = "id, name, description, cost, price, created_at, updated_at"

// Create inserts a new product; names are unique.
func (r *PGRepository) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	query := `
		INSERT INTO products (name, description, cost, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	p := Product{
		Name:        input.Name,
		Description: input.Description,
		Cost:        input.Cost,
		Price:       input.Price,
	}
	err := r.pool.QueryRow(ctx, query, input.Name, input.Description, input.Cost, input.Price).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

// Upsert creates the product or refreshes its cost/price when the name
// is already in the catalog. Used by the pricing calculator's
// save-to-catalog path.
func (r *PGRepository) Upsert(ctx context.Context, name string, cost, price float64) (*Product, error) {
	query := `
		INSERT INTO products (name, cost, price, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE
		SET cost = EXCLUDED.cost, price = EXCLUDED.price, updated_at = NOW()
		RETURNING ` + productColumns

	return r.scanProduct(r.pool.QueryRow(ctx, query, name, cost, price))
}

// Get fetches one product by ID.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"
	return r.scanProduct(r.pool.QueryRow(ctx, query, id))
}

// List returns products ordered by name, optionally filtered by a
// case-insensitive name substring.
func (r *PGRepository) List(ctx context.Context, nameFilter string) ([]Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	args := []any{}
	if nameFilter != "" {
		query += " WHERE name ILIKE '%' || $1 || '%'"
		args = append(args, nameFilter)
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Cost, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a product from the catalog.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Cost, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ Repository = (*PGRepository)(nil)
