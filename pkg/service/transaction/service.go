// Package transaction covers manual ledger entry and analytics.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
)

type Service struct {
	transactions repository.TransactionRepository
	logger       *slog.Logger
}

func New(transactions repository.TransactionRepository, logger *slog.Logger) *Service {
	return &Service{transactions: transactions, logger: logger}
}

// Create records a manually entered transaction. Manual entries carry no
// source id; that column is reserved for ingested receipts.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	create dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	t, err := domain.NewTransaction(
		userID,
		domain.TransactionType(create.Type),
		create.Amount,
		create.Category,
		create.Date,
	)
	if err != nil {
		return nil, err
	}
	t.WalletID = create.WalletID
	t.Description = create.Description

	if err := s.transactions.Create(ctx, t); err != nil {
		s.logger.Error("failed to create transaction", "error", err)
		return nil, err
	}
	return toRead(t), nil
}

// List returns the user's transactions, newest first.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) ([]*dto.TransactionRead, error) {
	items, err := s.transactions.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionRead, 0, len(items))
	for _, t := range items {
		out = append(out, toRead(t))
	}
	return out, nil
}

// Delete removes a transaction after verifying ownership.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	t, err := s.transactions.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return domain.ErrForbidden
	}
	return s.transactions.Delete(ctx, id)
}

// Summary aggregates income, expense and per-category totals over [from, to].
func (s *Service) Summary(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) (*dto.Summary, error) {
	sums, err := s.transactions.SumByCategory(ctx, userID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	summary := &dto.Summary{ByCategory: sums}
	for _, row := range sums {
		switch domain.TransactionType(row.Type) {
		case domain.TransactionTypeIncome:
			summary.Income += row.Total
		case domain.TransactionTypeExpense:
			summary.Expense += row.Total
		}
	}
	summary.Balance = summary.Income - summary.Expense
	return summary, nil
}

func toRead(t *domain.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Date:        t.Date,
		WalletID:    t.WalletID,
		SourceID:    t.SourceID,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
