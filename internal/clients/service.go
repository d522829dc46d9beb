package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrValidation indicates bad or missing client input.
var ErrValidation = errors.New("clients: invalid input")

// Service provides business logic for client reference data.
type Service struct {
	repo Repository
}

// NewService constructs a clients service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new client.
func (s *Service) Create(ctx context.Context, input CreateClientInput) (*Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrValidation)
	}
	return s.repo.Create(ctx, input)
}

// Get fetches a single client.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// List returns clients filtered by an optional name substring.
func (s *Service) List(ctx context.Context, nameFilter string) ([]Client, error) {
	return s.repo.List(ctx, strings.TrimSpace(nameFilter))
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
