package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libreta-app/libreta/internal/shared"
)

// Repository defines persistence operations for clients.
type Repository interface {
	Create(ctx context.Context, input CreateClientInput) (*Client, error)
	Get(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context, nameFilter string) ([]Client, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository provides PostgreSQL backed persistence for clients.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new client.
func (r *PGRepository) Create(ctx context.Context, input CreateClientInput) (*Client, error) {
	query := `
		INSERT INTO clients (name, phone, email, address, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	client := Client{
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if err := r.pool.QueryRow(ctx, query, input.Name, input.Phone, input.Email, input.Address, input.Notes).Scan(&client.ID, &client.CreatedAt); err != nil {
		return nil, err
	}
	return &client, nil
}

// Get fetches one client by ID.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Client, error) {
	query := "SELECT id, name, phone, email, address, notes, created_at FROM clients WHERE id = $1"
	var c Client
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns clients ordered by name, optionally filtered by a
// case-insensitive name substring.
func (r *PGRepository) List(ctx context.Context, nameFilter string) ([]Client, error) {
	query := "SELECT id, name, phone, email, address, notes, created_at FROM clients"
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

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a client. Sales keep the client name text they were
// created with, so nothing cascades.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
