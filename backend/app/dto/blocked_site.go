package dto

import "monitor-hub/backend/app/models"

type BlockedSiteCreateRequest struct {
	URL      string          `json:"url" validate:"required"`
	Severity models.Severity `json:"severity" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Reason   string          `json:"reason"`
}

// BlockedSiteUpdateRequest changes only the fields that are present. An
// empty severity counts as absent.
type BlockedSiteUpdateRequest struct {
	Severity models.Severity `json:"severity" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Reason   *string         `json:"reason"`
}

// SeverityUpdate returns nil when no severity was sent.
func (r BlockedSiteUpdateRequest) SeverityUpdate() *models.Severity {
	if r.Severity == "" {
		return nil
	}
	s := r.Severity
	return &s
}

type AlertListResponse struct {
	Success bool              `json:"success"`
	Alerts  []models.AlertLog `json:"alerts"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
