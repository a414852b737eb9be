package repository

import (
	"context"
	"errors"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) repository.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, w *domain.Wallet) error {
	row := Wallet{ID: w.ID, UserID: w.UserID, Name: w.Name, Balance: w.Balance}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	w.CreatedAt = row.CreatedAt
	return nil
}

func (r *walletRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	var row Wallet
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return walletToDomain(&row), nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Wallet, error) {
	var rows []Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Wallet, 0, len(rows))
	for i := range rows {
		out = append(out, walletToDomain(&rows[i]))
	}
	return out, nil
}

func (r *walletRepository) FirstByUser(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	var row Wallet
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return walletToDomain(&row), nil
}

func (r *walletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Wallet{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func walletToDomain(row *Wallet) *domain.Wallet {
	return &domain.Wallet{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
	}
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	row := Category{ID: c.ID, UserID: c.UserID, Name: c.Name, Type: string(c.Type)}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	c.CreatedAt = row.CreatedAt
	return nil
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var row Category
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return &domain.Category{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Type:      domain.TransactionType(row.Type),
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var rows []Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Category, 0, len(rows))
	for i := range rows {
		out = append(out, &domain.Category{
			ID:        rows[i].ID,
			UserID:    rows[i].UserID,
			Name:      rows[i].Name,
			Type:      domain.TransactionType(rows[i].Type),
			CreatedAt: rows[i].CreatedAt,
		})
	}
	return out, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) repository.BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Upsert(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	row := Budget{ID: b.ID, UserID: b.UserID, Category: b.Category, Limit: b.Limit}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit_amount", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved Budget
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", b.UserID, b.Category).
		First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &domain.Budget{
		ID:        saved.ID,
		UserID:    saved.UserID,
		Category:  saved.Category,
		Limit:     saved.Limit,
		CreatedAt: saved.CreatedAt,
		UpdatedAt: saved.UpdatedAt,
	}, nil
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	var rows []Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Budget, 0, len(rows))
	for i := range rows {
		out = append(out, &domain.Budget{
			ID:        rows[i].ID,
			UserID:    rows[i].UserID,
			Category:  rows[i].Category,
			Limit:     rows[i].Limit,
			CreatedAt: rows[i].CreatedAt,
			UpdatedAt: rows[i].UpdatedAt,
		})
	}
	return out, nil
}

func (r *budgetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Budget{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
