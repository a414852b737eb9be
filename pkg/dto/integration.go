package dto

import (
	"time"

	"github.com/google/uuid"
)

// CredentialsSave carries user-supplied OAuth application credentials.
type CredentialsSave struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

// IntegrationRead is the sanitized view of an integration row. Secrets and
// tokens never leave the service layer.
type IntegrationRead struct {
	ID           uuid.UUID  `json:"id"`
	Provider     string     `json:"provider"`
	IsActive     bool       `json:"is_active"`
	Connected    bool       `json:"connected"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// TokenUpdate is a partial update of an integration's token columns. Nil
// fields are left untouched; in particular a nil RefreshToken preserves the
// stored refresh token when a provider response omits one.
type TokenUpdate struct {
	AccessToken    *string
	RefreshToken   *string
	TokenExpiresAt *time.Time
	IsActive       *bool
	LastSyncedAt   *time.Time
}

// ConnectRequest is the OAuth redirect callback payload.
type ConnectRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}

// SyncResult reports one sync invocation. Errors holds per-message failures
// that did not stop the run.
type SyncResult struct {
	Added  int      `json:"added"`
	Errors []string `json:"errors"`
}
