package services

import (
	"context"

	"monitor-hub/backend/app/models"
	"monitor-hub/backend/app/repo"
)

type AlertService struct{ alerts *repo.AlertRepository }

func NewAlertService(alerts *repo.AlertRepository) *AlertService {
	return &AlertService{alerts: alerts}
}

// List returns every alert, most recent attempt first.
func (s *AlertService) List(ctx context.Context) ([]models.AlertLog, error) {
	alerts, err := s.alerts.List(ctx)
	if err != nil {
		return nil, storageErr("list alerts", err)
	}
	return alerts, nil
}
