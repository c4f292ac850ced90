package controllers

import (
	"net/http"
	"net/url"

	"monitor-hub/backend/app/dto"
	"monitor-hub/backend/app/services"

	"github.com/gorilla/mux"
)

type BlockedSiteController struct {
	Policies *services.PolicyService
}

func NewBlockedSiteController(policies *services.PolicyService) *BlockedSiteController {
	return &BlockedSiteController{Policies: policies}
}

func (c *BlockedSiteController) List(w http.ResponseWriter, r *http.Request) {
	sites, err := c.Policies.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "blocked site")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(sites))
}

func (c *BlockedSiteController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BlockedSiteCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	site, err := c.Policies.Create(r.Context(), req.URL, req.Severity, req.Reason)
	if err != nil {
		writeServiceError(w, r, err, "blocked site")
		return
	}
	writeJSON(w, http.StatusCreated, site)
}

func (c *BlockedSiteController) Update(w http.ResponseWriter, r *http.Request) {
	target, ok := siteURL(w, r)
	if !ok {
		return
	}
	var req dto.BlockedSiteUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	site, err := c.Policies.Update(r.Context(), target, req.SeverityUpdate(), req.Reason)
	if err != nil {
		writeServiceError(w, r, err, "blocked site")
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (c *BlockedSiteController) Delete(w http.ResponseWriter, r *http.Request) {
	target, ok := siteURL(w, r)
	if !ok {
		return
	}
	if err := c.Policies.Delete(r.Context(), target); err != nil {
		writeServiceError(w, r, err, "blocked site")
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// siteURL decodes the {url} path segment. The router keeps paths encoded so
// patterns containing "/" survive as one segment.
func siteURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := mux.Vars(r)["url"]
	target, err := url.PathUnescape(raw)
	if err != nil || target == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid url")
		return "", false
	}
	return target, true
}
