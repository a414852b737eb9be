package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a user record in the database.
type User struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Username string    `gorm:"uniqueIndex;not null;size:50"`
	Email    string    `gorm:"uniqueIndex;size:255"`
	Password string    `gorm:"not null"`
}

// Integration represents an OAuth integration record, one per (user, provider).
type Integration struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_integrations_user_provider"`
	Provider       string    `gorm:"size:32;not null;uniqueIndex:idx_integrations_user_provider"`
	ClientID       string    `gorm:"not null"`
	ClientSecret   string    `gorm:"not null"`
	AccessToken    *string
	RefreshToken   *string
	TokenExpiresAt *time.Time
	IsActive       bool `gorm:"not null;default:false"`
	LastSyncedAt   *time.Time
}

// Transaction represents a persisted ledger entry. SourceID carries the
// upstream message identifier for ingested rows; the partial unique index
// closes the concurrent-sync dedup race at the database level.
type Transaction struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_transactions_user_source,where:source_id IS NOT NULL"`
	Type        string    `gorm:"size:16;not null"`
	Amount      float64   `gorm:"type:decimal(14,2);not null"`
	Category    string    `gorm:"size:64;not null"`
	Date        time.Time `gorm:"type:date;not null"`
	WalletID    *uuid.UUID `gorm:"type:uuid"`
	SourceID    *string    `gorm:"size:128;uniqueIndex:idx_transactions_user_source,where:source_id IS NOT NULL"`
	Description string
}

// Wallet represents a wallet record in the database.
type Wallet struct {
	gorm.Model
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"size:64;not null"`
	Balance float64   `gorm:"type:decimal(14,2);not null;default:0"`
}

// Category represents a category record in the database.
type Category struct {
	gorm.Model
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"size:64;not null"`
	Type   string    `gorm:"size:16;not null"`
}

// Budget represents a monthly spending cap per category.
type Budget struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category"`
	Category string    `gorm:"size:64;not null;uniqueIndex:idx_budgets_user_category"`
	Limit    float64   `gorm:"column:limit_amount;type:decimal(14,2);not null"`
}

// Models lists every persisted model for auto-migration.
func Models() []any {
	return []any{&User{}, &Integration{}, &Transaction{}, &Wallet{}, &Category{}, &Budget{}}
}
