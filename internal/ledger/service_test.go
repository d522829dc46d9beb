package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/libreta-app/libreta/internal/shared"
)

type memoryRepo struct {
	nextID  int64
	entries map[int64]SaleEntry
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, entries: map[int64]SaleEntry{}}
}

func (m *memoryRepo) Create(_ context.Context, entry SaleEntry) (*SaleEntry, error) {
	entry.ID = m.nextID
	m.nextID++
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.entries[entry.ID] = entry
	return &entry, nil
}

func (m *memoryRepo) Update(_ context.Context, entry SaleEntry) error {
	if _, ok := m.entries[entry.ID]; !ok {
		return shared.ErrNotFound
	}
	entry.UpdatedAt = time.Now()
	m.entries[entry.ID] = entry
	return nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*SaleEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &entry, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.entries[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memoryRepo) List(_ context.Context, scope shared.Scope, filter Filter) ([]SaleEntry, error) {
	var out []SaleEntry
	for id := int64(1); id < m.nextID; id++ {
		entry, ok := m.entries[id]
		if !ok || !scope.CanSee(entry.UserID) {
			continue
		}
		if filter.Match(entry) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *memoryRepo) ListPending(_ context.Context, scope shared.Scope) ([]SaleEntry, error) {
	return m.List(context.Background(), scope, Filter{Status: StatusPending})
}

type countingBumper struct {
	bumps int
}

func (c *countingBumper) Bump(context.Context) error {
	c.bumps++
	return nil
}

func newTestService(repo Repository) (*Service, *countingBumper) {
	bumper := &countingBumper{}
	return NewService(repo, Config{}, bumper, nil), bumper
}

func pendingInput(amountPaid float64) SaleInput {
	due := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	return SaleInput{
		Date:         time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		ClientName:   "Marta",
		ProductName:  "Pastel de chocolate",
		CostPerUnit:  120,
		PricePerUnit: 200,
		Quantity:     2,
		Status:       StatusPending,
		AmountPaid:   amountPaid,
		DueDate:      &due,
	}
}

func TestServiceCreateDerivesAndScopes(t *testing.T) {
	repo := newMemoryRepo()
	svc, bumper := newTestService(repo)
	owner := shared.Scope{UserID: 7}

	entry, err := svc.Create(context.Background(), owner, pendingInput(150))
	require.NoError(t, err)
	require.Equal(t, int64(7), entry.UserID)
	require.Equal(t, 400.0, entry.Total)
	require.Equal(t, 160.0, entry.Profit)
	require.Equal(t, 250.0, entry.PendingAmount)
	require.Equal(t, 1, bumper.bumps)
}

func TestServiceVisibilityAcrossUsers(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo)
	owner := shared.Scope{UserID: 1}
	stranger := shared.Scope{UserID: 2}
	admin := shared.Scope{UserID: 3, IsAdmin: true}

	entry, err := svc.Create(context.Background(), owner, pendingInput(0))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), stranger, entry.ID)
	require.ErrorIs(t, err, shared.ErrForbidden)

	got, err := svc.Get(context.Background(), admin, entry.ID)
	require.NoError(t, err)
	require.Equal(t, entry.ID, got.ID)

	entries, summary, err := svc.List(context.Background(), stranger, Filter{})
	require.NoError(t, err)
	require.Empty(t, entries)
	require.Zero(t, summary.Count)
}

func TestServiceRecordPaymentSettles(t *testing.T) {
	repo := newMemoryRepo()
	svc, bumper := newTestService(repo)
	owner := shared.Scope{UserID: 1}

	entry, err := svc.Create(context.Background(), owner, pendingInput(100))
	require.NoError(t, err)

	updated, err := svc.RecordPayment(context.Background(), owner, entry.ID, 399.995)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, updated.Status)
	require.Zero(t, updated.PendingAmount)
	require.Nil(t, updated.DueDate)

	stored, err := repo.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, stored.Status)
	require.Equal(t, 2, bumper.bumps)
}

func TestServiceUpdatePreservesIdentity(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo)
	owner := shared.Scope{UserID: 1}

	entry, err := svc.Create(context.Background(), owner, pendingInput(0))
	require.NoError(t, err)

	input := pendingInput(0)
	input.Status = StatusPaid
	input.DueDate = nil
	updated, err := svc.Update(context.Background(), owner, entry.ID, input)
	require.NoError(t, err)
	require.Equal(t, entry.ID, updated.ID)
	require.Equal(t, entry.UserID, updated.UserID)
	require.Equal(t, StatusPaid, updated.Status)
	require.Equal(t, 400.0, updated.AmountPaid)
}

func TestServiceMarkPaidKeepsOverpayment(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo)
	owner := shared.Scope{UserID: 1}

	entry, err := svc.Create(context.Background(), owner, pendingInput(450))
	require.NoError(t, err)
	require.Equal(t, StatusPending, entry.Status)

	updated, err := svc.MarkPaid(context.Background(), owner, entry.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, updated.Status)
	require.Equal(t, 450.0, updated.AmountPaid)
}

func TestServiceDeleteRequiresOwnership(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(repo)
	owner := shared.Scope{UserID: 1}
	stranger := shared.Scope{UserID: 2}

	entry, err := svc.Create(context.Background(), owner, pendingInput(0))
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(context.Background(), stranger, entry.ID), shared.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), owner, entry.ID))

	_, err = repo.Get(context.Background(), entry.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
