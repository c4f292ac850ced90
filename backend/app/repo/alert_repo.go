package repo

import (
	"context"

	"monitor-hub/backend/app/models"

	"gorm.io/gorm"
)

type AlertRepository struct{ db *gorm.DB }

func NewAlertRepository(db *gorm.DB) *AlertRepository { return &AlertRepository{db: db} }

func (r *AlertRepository) Create(ctx context.Context, a *models.AlertLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AlertRepository) List(ctx context.Context) ([]models.AlertLog, error) {
	var alerts []models.AlertLog
	err := r.db.WithContext(ctx).Order("attempted_at DESC").Order("id DESC").Find(&alerts).Error
	return alerts, err
}
