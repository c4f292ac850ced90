package controllers

import (
	"net/http"

	"monitor-hub/backend/app/dto"
	"monitor-hub/backend/app/services"
)

type ActivityController struct {
	Activity *services.ActivityService
}

func NewActivityController(activity *services.ActivityService) *ActivityController {
	return &ActivityController{Activity: activity}
}

type logsResponse struct {
	Success bool `json:"success"`
	Logs    any  `json:"logs"`
}

func (c *ActivityController) PostApp(w http.ResponseWriter, r *http.Request) {
	var req dto.AppActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	a := req.Model()
	if err := c.Activity.RecordApp(r.Context(), a); err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreatedResponse{Success: true, ID: a.ID})
}

// PostWeb stores the visit and checks it against blocked sites. The response
// does not depend on whether an alert was raised.
func (c *ActivityController) PostWeb(w http.ResponseWriter, r *http.Request) {
	var req dto.WebActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ev := req.Model()
	if _, err := c.Activity.RecordWeb(r.Context(), ev); err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreatedResponse{Success: true, ID: ev.ID})
}

func (c *ActivityController) PostFs(w http.ResponseWriter, r *http.Request) {
	var req dto.FsActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ev := req.Model()
	if err := c.Activity.RecordFs(r.Context(), ev); err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreatedResponse{Success: true, ID: ev.ID})
}

func (c *ActivityController) ListApp(w http.ResponseWriter, r *http.Request) {
	f, err := activityFilter(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	logs, err := c.Activity.ListApp(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, logsResponse{Success: true, Logs: nonNil(logs)})
}

func (c *ActivityController) ListWeb(w http.ResponseWriter, r *http.Request) {
	f, err := activityFilter(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	// app and title only apply to application activity
	f.App, f.Title = "", ""
	logs, err := c.Activity.ListWeb(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, logsResponse{Success: true, Logs: nonNil(logs)})
}

func (c *ActivityController) RecentWeb(w http.ResponseWriter, r *http.Request) {
	logs, err := c.Activity.RecentWeb(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, logsResponse{Success: true, Logs: nonNil(logs)})
}

func (c *ActivityController) ListFs(w http.ResponseWriter, r *http.Request) {
	f, err := activityFilter(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	f.App, f.Title = "", ""
	logs, err := c.Activity.ListFs(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, logsResponse{Success: true, Logs: nonNil(logs)})
}
