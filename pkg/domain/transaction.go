package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense record. Category is matched to a
// user Category by name, not by foreign key, and WalletID is optional: ingested
// receipts carry no wallet taxonomy, so both stay loosely coupled on purpose.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      float64
	Category    string
	Date        time.Time
	WalletID    *uuid.UUID
	SourceID    *string
	Description string
	CreatedAt   time.Time
}

// NewTransaction builds a validated transaction. Date is truncated to a
// calendar day in UTC.
func NewTransaction(
	userID uuid.UUID,
	txType TransactionType,
	amount float64,
	category string,
	date time.Time,
) (*Transaction, error) {
	if !txType.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, txType)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	return &Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     txType,
		Amount:   amount,
		Category: category,
		Date:     DateOnly(date),
	}, nil
}

// DateOnly truncates t to a calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
