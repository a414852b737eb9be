// Package category manages user-defined transaction categories.
package category

import (
	"context"
	"log/slog"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
)

type Service struct {
	categories repository.CategoryRepository
	logger     *slog.Logger
}

func New(categories repository.CategoryRepository, logger *slog.Logger) *Service {
	return &Service{categories: categories, logger: logger}
}

func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	create dto.CategoryCreate,
) (*dto.CategoryRead, error) {
	c := &domain.Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   create.Name,
		Type:   domain.TransactionType(create.Type),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		s.logger.Error("failed to create category", "error", err)
		return nil, err
	}
	return toRead(c), nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryRead, error) {
	items, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryRead, 0, len(items))
	for _, c := range items {
		out = append(out, toRead(c))
	}
	return out, nil
}

// Delete removes a category after verifying ownership.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return domain.ErrForbidden
	}
	return s.categories.Delete(ctx, id)
}

func toRead(c *domain.Category) *dto.CategoryRead {
	return &dto.CategoryRead{ID: c.ID, Name: c.Name, Type: string(c.Type)}
}
