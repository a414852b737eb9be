package transaction

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransactionRepo struct {
	byID    map[uuid.UUID]*domain.Transaction
	sums    []dto.CategorySum
	deleted []uuid.UUID
}

func newFakeRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byID: map[uuid.UUID]*domain.Transaction{}}
}

func (f *fakeTransactionRepo) Create(_ context.Context, t *domain.Transaction) error {
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTransactionRepo) Get(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeTransactionRepo) ListByUser(
	_ context.Context, userID uuid.UUID, _ dto.TransactionFilter,
) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, t := range f.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTransactionRepo) ExistsBySourceID(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, errors.New("not used")
}

func (f *fakeTransactionRepo) SumByCategory(
	_ context.Context, _ uuid.UUID, _, _ time.Time,
) ([]dto.CategorySum, error) {
	return f.sums, nil
}

func TestCreate_ManualEntryHasNoSourceID(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, slog.Default())
	userID := uuid.New()

	read, err := svc.Create(context.Background(), userID, dto.TransactionCreate{
		Type:        "Expense",
		Amount:      50000,
		Category:    "Food",
		Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Description: "warteg",
	})
	require.NoError(t, err)

	assert.Nil(t, read.SourceID)
	assert.Equal(t, 50000.0, read.Amount)
	require.Len(t, repo.byID, 1)
	assert.Equal(t, userID, repo.byID[read.ID].UserID)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc := New(newFakeRepo(), slog.Default())

	_, err := svc.Create(context.Background(), uuid.New(), dto.TransactionCreate{
		Type:     "Gift",
		Amount:   100,
		Category: "Food",
		Date:     time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), uuid.New(), dto.TransactionCreate{
		Type:     "Expense",
		Amount:   -5,
		Category: "Food",
		Date:     time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete_EnforcesOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, slog.Default())
	owner := uuid.New()

	read, err := svc.Create(context.Background(), owner, dto.TransactionCreate{
		Type:     "Expense",
		Amount:   100,
		Category: "Food",
		Date:     time.Now(),
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), read.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, repo.byID, 1)

	require.NoError(t, svc.Delete(context.Background(), owner, read.ID))
	assert.Empty(t, repo.byID)
}

func TestSummary_Totals(t *testing.T) {
	repo := newFakeRepo()
	repo.sums = []dto.CategorySum{
		{Category: "Salary", Type: "Income", Total: 5000000},
		{Category: "Food", Type: "Expense", Total: 1200000},
		{Category: "Transport", Type: "Expense", Total: 300000},
	}
	svc := New(repo, slog.Default())

	summary, err := svc.Summary(context.Background(), uuid.New(),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 5000000.0, summary.Income)
	assert.Equal(t, 1500000.0, summary.Expense)
	assert.Equal(t, 3500000.0, summary.Balance)
	assert.Len(t, summary.ByCategory, 3)
}
