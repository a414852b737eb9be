package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	row := Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Date:        t.Date,
		WalletID:    t.WalletID,
		SourceID:    t.SourceID,
		Description: t.Description,
	}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return result.Error
	}
	t.CreatedAt = row.CreatedAt
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var row Transaction
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return transactionToDomain(&row), nil
}

func (r *transactionRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) ([]*domain.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.WalletID != nil {
		q = q.Where("wallet_id = ?", *filter.WalletID)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []Transaction
	if err := q.Order("date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, transactionToDomain(&rows[i]))
	}
	return out, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) ExistsBySourceID(
	ctx context.Context,
	userID uuid.UUID,
	sourceID string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND source_id = ?", userID, sourceID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *transactionRepository) SumByCategory(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]dto.CategorySum, error) {
	var sums []dto.CategorySum
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("category, type, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("category, type").
		Order("total DESC").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	return sums, nil
}

func transactionToDomain(row *Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:          row.ID,
		UserID:      row.UserID,
		Type:        domain.TransactionType(row.Type),
		Amount:      row.Amount,
		Category:    row.Category,
		Date:        row.Date,
		WalletID:    row.WalletID,
		SourceID:    row.SourceID,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}
