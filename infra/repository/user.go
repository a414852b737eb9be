package repository

import (
	"context"
	"errors"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	row := User{ID: u.ID, Username: u.Username, Email: u.Email, Password: u.Password}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return result.Error
	}
	u.CreatedAt = row.CreatedAt
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row User
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return userToDomain(&row), nil
}

func (r *userRepository) GetByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	var row User
	result := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identity, identity).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return userToDomain(&row), nil
}

func userToDomain(row *User) *domain.User {
	return &domain.User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		Password:  row.Password,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
