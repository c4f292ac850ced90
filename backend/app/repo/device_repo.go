package repo

import (
	"context"
	"errors"
	"time"

	"monitor-hub/backend/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepository struct{ db *gorm.DB }

func NewDeviceRepository(db *gorm.DB) *DeviceRepository { return &DeviceRepository{db: db} }

// Upsert inserts d, or when a device with the same user exists, copies the
// given columns from d onto it. The statement is atomic per user.
func (r *DeviceRepository) Upsert(ctx context.Context, d *models.Device, columns []string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_name"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(d).Error
}

// FindByUser returns nil, nil when no device is registered for user.
func (r *DeviceRepository) FindByUser(ctx context.Context, user string) (*models.Device, error) {
	var d models.Device
	err := r.db.WithContext(ctx).Where("user_name = ?", user).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SetOnline sets the status of an existing device and refreshes last_seen.
func (r *DeviceRepository) SetOnline(ctx context.Context, user string, online bool, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Device{}).
		Where("user_name = ?", user).
		Updates(map[string]any{
			"online":    online,
			"last_seen": at,
		})
	return res.RowsAffected, res.Error
}

// MarkStale flips every online device last seen before cutoff to offline.
func (r *DeviceRepository) MarkStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Device{}).
		Where("online = ? AND last_seen < ?", true, cutoff).
		Update("online", false)
	return res.RowsAffected, res.Error
}

func (r *DeviceRepository) List(ctx context.Context, city string) ([]models.Device, error) {
	q := r.db.WithContext(ctx)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	var ds []models.Device
	err := q.Order("user_name ASC").Find(&ds).Error
	return ds, err
}
