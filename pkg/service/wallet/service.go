// Package wallet manages the user's wallets.
package wallet

import (
	"context"
	"log/slog"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
)

type Service struct {
	wallets repository.WalletRepository
	logger  *slog.Logger
}

func New(wallets repository.WalletRepository, logger *slog.Logger) *Service {
	return &Service{wallets: wallets, logger: logger}
}

func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	create dto.WalletCreate,
) (*dto.WalletRead, error) {
	w := &domain.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    create.Name,
		Balance: create.Balance,
	}
	if err := s.wallets.Create(ctx, w); err != nil {
		s.logger.Error("failed to create wallet", "error", err)
		return nil, err
	}
	return toRead(w), nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.WalletRead, error) {
	items, err := s.wallets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WalletRead, 0, len(items))
	for _, w := range items {
		out = append(out, toRead(w))
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	w, err := s.wallets.Get(ctx, id)
	if err != nil {
		return err
	}
	if w.UserID != userID {
		return domain.ErrForbidden
	}
	return s.wallets.Delete(ctx, id)
}

func toRead(w *domain.Wallet) *dto.WalletRead {
	return &dto.WalletRead{
		ID:        w.ID,
		Name:      w.Name,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
	}
}
