package repository

import (
	"context"
	"errors"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type integrationRepository struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) repository.IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) SaveCredentials(
	ctx context.Context,
	userID uuid.UUID,
	provider, clientID, clientSecret string,
) (*domain.Integration, error) {
	row := Integration{
		ID:           uuid.New(),
		UserID:       userID,
		Provider:     provider,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		IsActive:     false,
	}
	// On conflict only the credential columns change; token columns and the
	// row id keep their stored values.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"client_id", "client_secret", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, provider)
}

func (r *integrationRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
	provider string,
) (*domain.Integration, error) {
	var row Integration
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return integrationToDomain(&row), nil
}

func (r *integrationRepository) UpdateTokens(
	ctx context.Context,
	id uuid.UUID,
	update dto.TokenUpdate,
) error {
	values := map[string]any{}
	if update.AccessToken != nil {
		values["access_token"] = *update.AccessToken
	}
	if update.RefreshToken != nil {
		values["refresh_token"] = *update.RefreshToken
	}
	if update.TokenExpiresAt != nil {
		values["token_expires_at"] = *update.TokenExpiresAt
	}
	if update.IsActive != nil {
		values["is_active"] = *update.IsActive
	}
	if update.LastSyncedAt != nil {
		values["last_synced_at"] = *update.LastSyncedAt
	}
	if len(values) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&Integration{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func integrationToDomain(row *Integration) *domain.Integration {
	return &domain.Integration{
		ID:             row.ID,
		UserID:         row.UserID,
		Provider:       row.Provider,
		ClientID:       row.ClientID,
		ClientSecret:   row.ClientSecret,
		AccessToken:    row.AccessToken,
		RefreshToken:   row.RefreshToken,
		TokenExpiresAt: row.TokenExpiresAt,
		IsActive:       row.IsActive,
		LastSyncedAt:   row.LastSyncedAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
