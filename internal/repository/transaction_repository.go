package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"disputedesk/internal/model"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) List(ctx context.Context) ([]model.DisputedTransaction, error) {
	var txs []model.DisputedTransaction
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list disputed transactions failed: %w", err)
	}
	return txs, nil
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.DisputedTransaction, error) {
	var tx model.DisputedTransaction
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disputed transaction failed: %w", err)
	}
	return &tx, nil
}

func (r *TransactionRepository) Upsert(ctx context.Context, tx *model.DisputedTransaction) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "date", "customer", "status", "type"}),
	}).Create(tx).Error
	if err != nil {
		return fmt.Errorf("upsert disputed transaction failed: %w", err)
	}
	return nil
}
