package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"monitor-hub/backend/app/middleware"
	"monitor-hub/backend/app/repo"
	"monitor-hub/backend/app/services"
	"monitor-hub/backend/global"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}

// writeServiceError maps service sentinels to status codes. subject names the
// resource in 404 and 409 messages.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, subject string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, subject+" not found")
	case errors.Is(err, services.ErrConflict):
		writeJSONError(w, http.StatusConflict, subject+" already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		global.Logger.Error().Err(err).
			Str("path", r.URL.Path).
			Str("request_id", middleware.RequestID(r.Context())).
			Msg("request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// activityFilter reads user, hostname, app, title, search, from and to.
func activityFilter(r *http.Request) (repo.ActivityFilter, error) {
	q := r.URL.Query()
	f := repo.ActivityFilter{
		User:     q.Get("user"),
		Hostname: q.Get("hostname"),
		App:      q.Get("app"),
		Title:    q.Get("title"),
		Search:   q.Get("search"),
	}
	var err error
	if f.From, err = parseTimeParam("from", q.Get("from")); err != nil {
		return f, err
	}
	if f.To, err = parseTimeParam("to", q.Get("to")); err != nil {
		return f, err
	}
	return f, nil
}

// parseTimeParam accepts RFC3339 or a bare date, which means midnight UTC.
func parseTimeParam(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid %s: want RFC3339 or YYYY-MM-DD", name)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
