package dto

import (
	"time"

	"github.com/google/uuid"
)

// WalletCreate represents a new wallet.
type WalletCreate struct {
	Name    string  `json:"name" validate:"required,max=64"`
	Balance float64 `json:"balance"`
}

// WalletRead is the API view of a wallet.
type WalletRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryCreate represents a new category.
type CategoryCreate struct {
	Name string `json:"name" validate:"required,max=64"`
	Type string `json:"type" validate:"required,oneof=Income Expense"`
}

// CategoryRead is the API view of a category.
type CategoryRead struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// BudgetSet creates or updates the monthly limit for a category.
type BudgetSet struct {
	Category string  `json:"category" validate:"required,max=64"`
	Limit    float64 `json:"limit" validate:"gt=0"`
}

// BudgetRead reports a budget with spending for the current month.
type BudgetRead struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Limit    float64   `json:"limit"`
	Spent    float64   `json:"spent"`
}
