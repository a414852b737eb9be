// Package budget manages monthly per-category spending caps and reports
// month-to-date spending against them.
package budget

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
)

type Service struct {
	budgets      repository.BudgetRepository
	transactions repository.TransactionRepository
	logger       *slog.Logger
}

func New(
	budgets repository.BudgetRepository,
	transactions repository.TransactionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{budgets: budgets, transactions: transactions, logger: logger}
}

// Set creates or replaces the budget for a category.
func (s *Service) Set(
	ctx context.Context,
	userID uuid.UUID,
	set dto.BudgetSet,
) (*dto.BudgetRead, error) {
	b := &domain.Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Category: set.Category,
		Limit:    set.Limit,
	}
	saved, err := s.budgets.Upsert(ctx, b)
	if err != nil {
		s.logger.Error("failed to save budget", "error", err)
		return nil, err
	}
	return &dto.BudgetRead{
		ID:       saved.ID,
		Category: saved.Category,
		Limit:    saved.Limit,
	}, nil
}

// List returns the user's budgets with expense spending for the current
// month. Budgets match transactions by category name, not by key; a renamed
// category silently detaches from its budget, which mirrors how transactions
// themselves reference categories.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.BudgetRead, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := monthBounds(time.Now())
	sums, err := s.transactions.SumByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	spentByCategory := make(map[string]float64, len(sums))
	for _, row := range sums {
		if domain.TransactionType(row.Type) == domain.TransactionTypeExpense {
			spentByCategory[row.Category] += row.Total
		}
	}

	out := make([]*dto.BudgetRead, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, &dto.BudgetRead{
			ID:       b.ID,
			Category: b.Category,
			Limit:    b.Limit,
			Spent:    spentByCategory[b.Category],
		})
	}
	return out, nil
}

// Delete removes a budget. The repository scopes the delete to the owner, so
// another user's budget id comes back as not found.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.budgets.Delete(ctx, userID, id)
}

func monthBounds(now time.Time) (time.Time, time.Time) {
	u := now.UTC()
	from := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}
