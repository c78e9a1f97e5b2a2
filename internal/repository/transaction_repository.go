package repository

import (
	"context"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) error
	FindByID(ctx context.Context, id uint64) (*model.Transaction, error)
	FindCompletedByOrder(ctx context.Context, orderID uint64) (*model.Transaction, error)
	MarkCompleted(ctx context.Context, id uint64, completedAt time.Time) error
	ReleaseEscrow(ctx context.Context, id uint64) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint64) (*model.Transaction, error) {
	var txn model.Transaction
	if err := r.db.WithContext(ctx).First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) FindCompletedByOrder(ctx context.Context, orderID uint64) (*model.Transaction, error) {
	var txn model.Transaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID, model.TransactionStatusCompleted).
		Order("id DESC").
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) MarkCompleted(ctx context.Context, id uint64, completedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.TransactionStatusCompleted,
			"completed_at": completedAt,
		}).Error
}

func (r *transactionRepository) ReleaseEscrow(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("escrow_released", true).Error
}
