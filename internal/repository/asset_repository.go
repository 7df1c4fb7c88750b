package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"disputedesk/internal/model"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("create asset failed: %w", err)
	}
	return nil
}

func (r *AssetRepository) GetByAssetID(ctx context.Context, assetID string) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset failed: %w", err)
	}
	return &asset, nil
}

func (r *AssetRepository) ListBySessionID(ctx context.Context, sessionID string) ([]model.Asset, error) {
	var assets []model.Asset
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("list assets failed: %w", err)
	}
	return assets, nil
}

// AttachToSession links previously uploaded assets to a portal session.
func (r *AssetRepository) AttachToSession(ctx context.Context, sessionID string, assetIDs []string) error {
	if len(assetIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Asset{}).
		Where("asset_id IN ?", assetIDs).
		Update("session_id", sessionID).Error; err != nil {
		return fmt.Errorf("attach assets failed: %w", err)
	}
	return nil
}
