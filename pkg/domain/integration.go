package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProviderGmail is the only mail provider supported by the receipt pipeline.
const ProviderGmail = "gmail"

// Integration holds one user's OAuth configuration and token state for one
// external provider. The user brings their own OAuth application credentials
// (ClientID/ClientSecret); tokens are filled in by the connect flow.
type Integration struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       string
	ClientID       string
	ClientSecret   string
	AccessToken    *string
	RefreshToken   *string
	TokenExpiresAt *time.Time
	IsActive       bool
	LastSyncedAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Connected reports whether a refresh token has been obtained, i.e. whether
// sync can mint access tokens without user interaction.
func (i *Integration) Connected() bool {
	return i.RefreshToken != nil && *i.RefreshToken != ""
}

// ParsedReceipt is the structured result of extracting a payment receipt out
// of a mail message body. Every field has a default, so extraction either
// yields a full value or nothing at all.
type ParsedReceipt struct {
	Amount   float64
	Merchant string
	Category string
	Date     time.Time
}
