package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"disputedesk/internal/model"
)

type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) List(ctx context.Context) ([]model.EscalatedCase, error) {
	var cases []model.EscalatedCase
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("list escalated cases failed: %w", err)
	}
	return cases, nil
}

func (r *CaseRepository) GetByCaseID(ctx context.Context, caseID string) (*model.EscalatedCase, error) {
	var c model.EscalatedCase
	if err := r.db.WithContext(ctx).Where("case_id = ?", caseID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get escalated case failed: %w", err)
	}
	return &c, nil
}

// Upsert inserts the case or refreshes its payload when the case id exists.
func (r *CaseRepository) Upsert(ctx context.Context, c *model.EscalatedCase) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "case_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"priority", "payload"}),
	}).Create(c).Error
	if err != nil {
		return fmt.Errorf("upsert escalated case failed: %w", err)
	}
	return nil
}
