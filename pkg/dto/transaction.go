package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionCreate represents a manually entered transaction.
type TransactionCreate struct {
	Type        string     `json:"type" validate:"required,oneof=Income Expense"`
	Amount      float64    `json:"amount" validate:"gte=0"`
	Category    string     `json:"category" validate:"required"`
	Date        time.Time  `json:"date" validate:"required"`
	WalletID    *uuid.UUID `json:"wallet_id,omitempty"`
	Description string     `json:"description,omitempty"`
}

// TransactionRead is the API view of a transaction.
type TransactionRead struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
	WalletID    *uuid.UUID `json:"wallet_id,omitempty"`
	SourceID    *string    `json:"source_id,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Type     string
	Category string
	WalletID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Limit    int
}

// CategorySum is one row of the per-category analytics aggregate.
type CategorySum struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
}

// Summary aggregates a user's transactions over a date range.
type Summary struct {
	Income     float64       `json:"income"`
	Expense    float64       `json:"expense"`
	Balance    float64       `json:"balance"`
	ByCategory []CategorySum `json:"by_category"`
}
