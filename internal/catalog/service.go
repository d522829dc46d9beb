package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrValidation indicates bad or missing product input.
var ErrValidation = errors.New("catalog: invalid input")

// Service provides business logic for the product catalog.
type Service struct {
	repo Repository
}

// NewService constructs a catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new product.
func (s *Service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if input.Cost < 0 || input.Price < 0 {
		return nil, fmt.Errorf("%w: cost and price cannot be negative", ErrValidation)
	}
	return s.repo.Create(ctx, input)
}

// Upsert stores a calculator result in the catalog, replacing the
// cost/price of an existing entry with the same name.
func (s *Service) Upsert(ctx context.Context, name string, cost, price float64) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if cost < 0 || price < 0 {
		return nil, fmt.Errorf("%w: cost and price cannot be negative", ErrValidation)
	}
	return s.repo.Upsert(ctx, name, cost, price)
}

// Get fetches a single product.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns products filtered by an optional name substring.
func (s *Service) List(ctx context.Context, nameFilter string) ([]Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(nameFilter))
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
