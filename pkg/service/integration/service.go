// Package integration manages the per-user OAuth credential and token
// lifecycle for the mail receipt pipeline.
package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitracker/fitracker/infra/provider/google"
	"github.com/fitracker/fitracker/pkg/config"
	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/provider/mail"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
)

type Service struct {
	repo   repository.IntegrationRepository
	oauth  mail.TokenExchanger
	cfg    *config.Google
	logger *slog.Logger
}

func New(
	repo repository.IntegrationRepository,
	oauth mail.TokenExchanger,
	cfg *config.Google,
	logger *slog.Logger,
) *Service {
	return &Service{repo: repo, oauth: oauth, cfg: cfg, logger: logger}
}

// SaveCredentials stores the user's own OAuth application credentials. The
// row starts inactive; a later Connect promotes it.
func (s *Service) SaveCredentials(
	ctx context.Context,
	userID uuid.UUID,
	clientID, clientSecret string,
) (*dto.IntegrationRead, error) {
	log := s.logger.With("context", "SaveCredentials", "userID", userID)
	integ, err := s.repo.SaveCredentials(ctx, userID, domain.ProviderGmail, clientID, clientSecret)
	if err != nil {
		log.Error("failed to save credentials", "error", err)
		return nil, err
	}
	log.Info("credentials saved", "provider", integ.Provider)
	return toRead(integ), nil
}

// Get returns the sanitized integration state, or domain.ErrNotFound when the
// integration was never configured.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*dto.IntegrationRead, error) {
	integ, err := s.repo.Get(ctx, userID, domain.ProviderGmail)
	if err != nil {
		return nil, err
	}
	return toRead(integ), nil
}

// AuthCodeURL builds the hosted consent page URL from the stored client id.
func (s *Service) AuthCodeURL(ctx context.Context, userID uuid.UUID, redirectURI string) (string, error) {
	integ, err := s.repo.Get(ctx, userID, domain.ProviderGmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrMissingIntegration
		}
		return "", err
	}
	return google.AuthCodeURL(s.cfg.AuthURL, integ.ClientID, redirectURI, s.cfg.Scope), nil
}

// Connect exchanges an authorization code for tokens and persists them,
// marking the integration active. Authorization codes are single-use by
// provider contract; a failed exchange requires a fresh consent round-trip,
// never a retry with the same code. A response without a refresh token (Google
// omits it on re-consent) leaves the previously stored refresh token intact.
// Nothing is written when the provider rejects the exchange.
func (s *Service) Connect(
	ctx context.Context,
	userID uuid.UUID,
	code, redirectURI string,
) error {
	log := s.logger.With("context", "Connect", "userID", userID)

	integ, err := s.repo.Get(ctx, userID, domain.ProviderGmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrMissingIntegration
		}
		return fmt.Errorf("failed to load integration: %w", err)
	}

	tokens, err := s.oauth.Exchange(ctx, integ.ClientID, integ.ClientSecret, code, redirectURI)
	if err != nil {
		log.Error("token exchange failed", "error", err)
		return err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(tokens.ExpiresIn) * time.Second)
	active := true
	update := dto.TokenUpdate{
		AccessToken:    &tokens.AccessToken,
		TokenExpiresAt: &expiresAt,
		IsActive:       &active,
		LastSyncedAt:   &now,
	}
	if tokens.RefreshToken != "" {
		update.RefreshToken = &tokens.RefreshToken
	}

	if err := s.repo.UpdateTokens(ctx, integ.ID, update); err != nil {
		log.Error("failed to persist tokens", "error", err)
		return fmt.Errorf("failed to persist tokens: %w", err)
	}

	log.Info("integration connected", "provider", integ.Provider)
	return nil
}

func toRead(i *domain.Integration) *dto.IntegrationRead {
	return &dto.IntegrationRead{
		ID:           i.ID,
		Provider:     i.Provider,
		IsActive:     i.IsActive,
		Connected:    i.Connected(),
		LastSyncedAt: i.LastSyncedAt,
	}
}
