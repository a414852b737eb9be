package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is a named container for transactions (cash, bank account, e-wallet).
type Wallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Balance   float64
	CreatedAt time.Time
}

// Category is a user-defined transaction label. Transactions reference it by
// name only.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      TransactionType
	CreatedAt time.Time
}

// Budget caps spending for one category over a calendar month.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  string
	Limit     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
