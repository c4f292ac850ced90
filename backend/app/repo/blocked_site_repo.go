package repo

import (
	"context"
	"errors"

	"monitor-hub/backend/app/models"

	"gorm.io/gorm"
)

type BlockedSiteRepository struct{ db *gorm.DB }

func NewBlockedSiteRepository(db *gorm.DB) *BlockedSiteRepository {
	return &BlockedSiteRepository{db: db}
}

func (r *BlockedSiteRepository) Create(ctx context.Context, s *models.BlockedSite) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindByURL returns nil, nil when no policy has exactly this pattern.
func (r *BlockedSiteRepository) FindByURL(ctx context.Context, url string) (*models.BlockedSite, error) {
	var s models.BlockedSite
	err := r.db.WithContext(ctx).Where("url = ?", url).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all policies, newest first. Matching relies on this order
// being stable between calls.
func (r *BlockedSiteRepository) List(ctx context.Context) ([]models.BlockedSite, error) {
	var sites []models.BlockedSite
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&sites).Error
	return sites, err
}

func (r *BlockedSiteRepository) Update(ctx context.Context, url string, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.BlockedSite{}).
		Where("url = ?", url).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *BlockedSiteRepository) Delete(ctx context.Context, url string) (int64, error) {
	res := r.db.WithContext(ctx).Where("url = ?", url).Delete(&models.BlockedSite{})
	return res.RowsAffected, res.Error
}
