package controllers

import (
	"net/http"

	"monitor-hub/backend/app/dto"
	"monitor-hub/backend/app/services"
)

type AlertController struct {
	Alerts *services.AlertService
}

func NewAlertController(alerts *services.AlertService) *AlertController {
	return &AlertController{Alerts: alerts}
}

func (c *AlertController) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := c.Alerts.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "alert")
		return
	}
	writeJSON(w, http.StatusOK, dto.AlertListResponse{Success: true, Alerts: nonNil(alerts)})
}
