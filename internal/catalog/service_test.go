package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/internal/shared"
)

type memoryRepo struct {
	byName map[string]*Product
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byName: map[string]*Product{}, nextID: 1}
}

func (r *memoryRepo) Create(_ context.Context, input CreateProductInput) (*Product, error) {
	if _, ok := r.byName[input.Name]; ok {
		return nil, ErrAlreadyExists
	}
	p := &Product{ID: r.nextID, Name: input.Name, Description: input.Description, Cost: input.Cost, Price: input.Price}
	r.byName[p.Name] = p
	r.nextID++
	return p, nil
}

func (r *memoryRepo) Upsert(_ context.Context, name string, cost, price float64) (*Product, error) {
	if p, ok := r.byName[name]; ok {
		p.Cost, p.Price = cost, price
		return p, nil
	}
	return r.Create(context.Background(), CreateProductInput{Name: name, Cost: cost, Price: price})
}

func (r *memoryRepo) Get(_ context.Context, id int64) (*Product, error) {
	for _, p := range r.byName {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryRepo) List(_ context.Context, _ string) ([]Product, error) {
	out := make([]Product, 0, len(r.byName))
	for _, p := range r.byName {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	for name, p := range r.byName {
		if p.ID == id {
			delete(r.byName, name)
			return nil
		}
	}
	return shared.ErrNotFound
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "   "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateProductInput{Name: "Pan dulce", Cost: -1})
	require.ErrorIs(t, err, ErrValidation)

	p, err := svc.Create(context.Background(), CreateProductInput{Name: "  Pan dulce ", Cost: 4, Price: 10})
	require.NoError(t, err)
	require.Equal(t, "Pan dulce", p.Name)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "Pan dulce", Cost: 4, Price: 10})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateProductInput{Name: "Pan dulce", Cost: 5, Price: 12})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUpsertRefreshesExistingProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	first, err := svc.Upsert(context.Background(), "Pastel chico", 100, 180)
	require.NoError(t, err)

	second, err := svc.Upsert(context.Background(), "Pastel chico", 120, 200)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 120.0, second.Cost)
	require.Equal(t, 200.0, second.Price)
	require.Len(t, repo.byName, 1)
}
