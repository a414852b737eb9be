// Package repository declares the persistence interfaces consumed by the
// service layer. GORM-backed implementations live in infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/google/uuid"
)

// IntegrationRepository stores one OAuth integration row per (user, provider).
type IntegrationRepository interface {
	// SaveCredentials upserts the caller-supplied OAuth application
	// credentials. On first save the row is created inactive; on subsequent
	// saves only the credential columns change, token columns are untouched.
	SaveCredentials(ctx context.Context, userID uuid.UUID, provider, clientID, clientSecret string) (*domain.Integration, error)

	// Get returns the row or domain.ErrNotFound when the integration was
	// never configured.
	Get(ctx context.Context, userID uuid.UUID, provider string) (*domain.Integration, error)

	// UpdateTokens applies a partial token update; nil fields keep their
	// stored values.
	UpdateTokens(ctx context.Context, id uuid.UUID, update dto.TokenUpdate) error
}

// TransactionRepository persists the transaction ledger.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter) ([]*domain.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySourceID reports whether a transaction ingested from the given
	// upstream message already exists for the user.
	ExistsBySourceID(ctx context.Context, userID uuid.UUID, sourceID string) (bool, error)

	// SumByCategory aggregates amounts per (category, type) over a date range.
	SumByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]dto.CategorySum, error)
}

// WalletRepository persists wallets.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Wallet, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FirstByUser returns the user's oldest wallet, the fallback target for
	// ingested transactions.
	FirstByUser(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetRepository persists per-category monthly budgets.
type BudgetRepository interface {
	// Upsert creates or replaces the budget for (user, category).
	Upsert(ctx context.Context, b *domain.Budget) (*domain.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error)

	// Delete removes the budget only when it belongs to userID.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByIdentity resolves a username or email to a user.
	GetByIdentity(ctx context.Context, identity string) (*domain.User, error)
}
