package category

import (
	"context"
	"log/slog"
	"testing"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	byID map[uuid.UUID]*domain.Category
}

func newFakeRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[uuid.UUID]*domain.Category{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range f.byID {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCreateAndList(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, slog.Default())
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, dto.CategoryCreate{
		Name: "Groceries",
		Type: "Expense",
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.Name)

	items, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	other, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDelete_EnforcesOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, slog.Default())
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, dto.CategoryCreate{
		Name: "Groceries",
		Type: "Expense",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, repo.byID, 1, "category must survive a cross-user delete attempt")

	require.NoError(t, svc.Delete(context.Background(), owner, created.ID))
	assert.Empty(t, repo.byID)
}

func TestDelete_UnknownID(t *testing.T) {
	svc := New(newFakeRepo(), slog.Default())
	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
