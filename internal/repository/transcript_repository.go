package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"disputedesk/internal/model"
)

type TranscriptRepository struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

func (r *TranscriptRepository) Create(ctx context.Context, msg *model.TranscriptMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create transcript message failed: %w", err)
	}
	return nil
}

func (r *TranscriptRepository) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]model.TranscriptMessage, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	var messages []model.TranscriptMessage
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("sent_at ASC, id ASC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list transcript messages failed: %w", err)
	}
	return messages, nil
}
