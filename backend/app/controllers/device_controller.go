package controllers

import (
	"net/http"

	"monitor-hub/backend/app/dto"
	"monitor-hub/backend/app/services"
)

type DeviceController struct {
	Presence *services.PresenceService
}

func NewDeviceController(presence *services.PresenceService) *DeviceController {
	return &DeviceController{Presence: presence}
}

// Report handles heartbeats: POST /device.
func (c *DeviceController) Report(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := c.Presence.Touch(r.Context(), services.DeviceReport{
		User:     req.User,
		Hostname: req.Hostname,
		Platform: req.Platform,
		FreeMem:  req.FreeMem,
		TotalMem: req.TotalMem,
		CPUs:     req.CPUs,
		Location: req.Location,
		City:     req.City,
		Meta:     req.Meta,
	})
	if err != nil {
		writeServiceError(w, r, err, "device")
		return
	}
	writeJSON(w, http.StatusOK, dto.DeviceResponse{Success: true, Device: d})
}

// Status handles explicit status reports: POST /device/status.
func (c *DeviceController) Status(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := c.Presence.SetStatus(r.Context(), req.User, req.Status == "online")
	if err != nil {
		writeServiceError(w, r, err, "device")
		return
	}
	writeJSON(w, http.StatusOK, dto.DeviceResponse{Success: true, Device: d})
}

func (c *DeviceController) List(w http.ResponseWriter, r *http.Request) {
	devices, err := c.Presence.List(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeServiceError(w, r, err, "device")
		return
	}
	writeJSON(w, http.StatusOK, dto.DeviceListResponse{Success: true, Devices: nonNil(devices)})
}
