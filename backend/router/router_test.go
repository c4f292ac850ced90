package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"monitor-hub/backend/app/controllers"
	"monitor-hub/backend/app/db"
	jwtutil "monitor-hub/backend/app/jwt"
	"monitor-hub/backend/app/middleware"
	"monitor-hub/backend/app/models"
	"monitor-hub/backend/app/repo"
	"monitor-hub/backend/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newServer(t *testing.T, authEnabled bool) http.Handler {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	now := func() time.Time { return t0 }
	sites := repo.NewBlockedSiteRepository(gdb)
	alerts := repo.NewAlertRepository(gdb)
	presence := services.NewPresenceService(repo.NewDeviceRepository(gdb), now)
	activity := services.NewActivityService(services.ActivityDeps{
		Activities: repo.NewActivityRepository(gdb),
		Sites:      sites,
		Alerts:     alerts,
		Presence:   presence,
		Now:        now,
	})
	users := services.NewUserService(repo.NewUserRepository(gdb))
	require.NoError(t, users.EnsureAdmin(t.Context(), "admin", "admin123"))
	require.NoError(t, users.CreateUser(t.Context(), "viewer", "viewer", models.RoleViewer))
	signer := &jwtutil.Signer{Secret: []byte("test"), Issuer: "test", ExpMin: 5}

	return NewRouter(Controllers{
		Activity:     controllers.NewActivityController(activity),
		Devices:      controllers.NewDeviceController(presence),
		BlockedSites: controllers.NewBlockedSiteController(services.NewPolicyService(sites, now)),
		Alerts:       controllers.NewAlertController(services.NewAlertService(alerts)),
		Auth:         controllers.NewAuthController(users, signer),
		Health:       controllers.NewHealthController(gdb),
	}, &middleware.Auth{Signer: signer, Enabled: authEnabled})
}

func do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestIngestAndAlertFlow(t *testing.T) {
	h := newServer(t, false)

	rec := do(t, h, http.MethodPost, "/blocked-sites", map[string]any{"url": "example.com", "severity": "HIGH", "reason": "policy"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	site := decode[models.BlockedSite](t, rec)
	assert.Equal(t, models.SeverityHigh, site.Severity)

	rec = do(t, h, http.MethodPost, "/activity/web", map[string]any{
		"user": "alice", "hostname": "lap-1", "url": "https://example.com/x", "title": "Example", "duration": 12,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, true, created["success"])
	assert.NotZero(t, created["id"])

	rec = do(t, h, http.MethodPost, "/activity/web", map[string]any{"url": "https://go.dev"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/alerts", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	alerts := decode[struct {
		Success bool              `json:"success"`
		Alerts  []models.AlertLog `json:"alerts"`
	}](t, rec)
	require.Len(t, alerts.Alerts, 1)
	assert.Equal(t, "example.com", alerts.Alerts[0].BlockedURL)
	assert.Equal(t, models.SeverityHigh, alerts.Alerts[0].Severity)
	assert.Equal(t, "lap-1", alerts.Alerts[0].DeviceName)
	assert.Equal(t, "12", alerts.Alerts[0].Duration)

	rec = do(t, h, http.MethodGet, "/activity/web?search=EXAMPLE", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[struct {
		Logs []models.WebActivity `json:"logs"`
	}](t, rec)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, "Other", logs.Logs[0].Category)

	rec = do(t, h, http.MethodGet, "/activity/web/recent", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	recent := decode[struct {
		Logs []models.WebActivity `json:"logs"`
	}](t, rec)
	assert.Len(t, recent.Logs, 2)
}

func TestAppActivity(t *testing.T) {
	h := newServer(t, false)

	rec := do(t, h, http.MethodPost, "/activity/app", map[string]any{"app": "code"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing title")

	rec = do(t, h, http.MethodPost, "/activity/app", map[string]any{"app": "code", "title": "Main.go", "ts": "2026-02-28T10:00:00Z"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/activity/app?app=code&title=main&from=2026-02-28&to=2026-03-01", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[struct {
		Logs []models.AppActivity `json:"logs"`
	}](t, rec)
	assert.Len(t, logs.Logs, 1)

	rec = do(t, h, http.MethodGet, "/activity/app?from=yesterday", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/activity/app", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFsActivity(t *testing.T) {
	h := newServer(t, false)

	rec := do(t, h, http.MethodPost, "/activity/fs", map[string]any{"user": "alice", "event": "unlink", "path": "/tmp/a"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/activity/fs?search=UNLINK", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[struct {
		Logs []models.FsActivity `json:"logs"`
	}](t, rec)
	require.Len(t, logs.Logs, 1)
	assert.Equal(t, "fs", logs.Logs[0].Type)

	rec = do(t, h, http.MethodGet, "/activity/fs?user=nobody", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"logs":[]}`, rec.Body.String())
}

func TestDeviceEndpoints(t *testing.T) {
	h := newServer(t, false)

	rec := do(t, h, http.MethodPost, "/device/status", map[string]any{"user": "bob", "status": "offline"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/device", map[string]any{"hostname": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/device", map[string]any{
		"user": "alice", "hostname": "lap-1", "cpus": 4, "location": map[string]any{"city": "Oslo"}, "agent": "v1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Success bool          `json:"success"`
		Device  models.Device `json:"device"`
	}](t, rec)
	assert.True(t, resp.Success)
	assert.True(t, resp.Device.Online)
	assert.Equal(t, "Oslo", resp.Device.City)
	assert.Equal(t, "v1", resp.Device.Meta["agent"])

	rec = do(t, h, http.MethodPost, "/device/status", map[string]any{"user": "alice", "status": "away"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/device/status", map[string]any{"user": "alice", "status": "offline"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[struct {
		Success bool          `json:"success"`
		Device  models.Device `json:"device"`
	}](t, rec)
	assert.False(t, resp.Device.Online)

	rec = do(t, h, http.MethodGet, "/devices?city=Oslo", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Devices []models.Device `json:"devices"`
	}](t, rec)
	assert.Len(t, list.Devices, 1)

	rec = do(t, h, http.MethodGet, "/devices?city=Lima", nil, "")
	assert.JSONEq(t, `{"success":true,"devices":[]}`, rec.Body.String())
}

func TestBlockedSiteManagement(t *testing.T) {
	h := newServer(t, false)

	rec := do(t, h, http.MethodPost, "/blocked-sites", map[string]any{"severity": "LOW"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/blocked-sites", map[string]any{"url": "x.com", "severity": "SEVERE"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/blocked-sites", map[string]any{"url": "example.com/games"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.SeverityMedium, decode[models.BlockedSite](t, rec).Severity)

	rec = do(t, h, http.MethodPost, "/blocked-sites", map[string]any{"url": "example.com/games"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPatch, "/blocked-sites/example.com%2Fgames", map[string]any{"reason": "time sink"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	site := decode[models.BlockedSite](t, rec)
	assert.Equal(t, "time sink", site.Reason)
	assert.Equal(t, models.SeverityMedium, site.Severity)

	rec = do(t, h, http.MethodPatch, "/blocked-sites/example.com%2Fgames", map[string]any{"severity": "", "reason": "still medium"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	site = decode[models.BlockedSite](t, rec)
	assert.Equal(t, "still medium", site.Reason)
	assert.Equal(t, models.SeverityMedium, site.Severity)

	rec = do(t, h, http.MethodPatch, "/blocked-sites/nope.com", map[string]any{"reason": "x"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/blocked-sites", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.BlockedSite](t, rec), 1)

	rec = do(t, h, http.MethodDelete, "/blocked-sites/example.com%2Fgames", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/blocked-sites/example.com%2Fgames", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/blocked-sites", nil, "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAuthEnabled(t *testing.T) {
	h := newServer(t, true)

	rec := do(t, h, http.MethodGet, "/alerts", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/login", map[string]any{"username": "admin", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/login", map[string]any{"username": "admin", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	admin := decode[map[string]string](t, rec)["access_token"]
	require.NotEmpty(t, admin)

	rec = do(t, h, http.MethodPost, "/login", map[string]any{"username": "viewer", "password": "viewer"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	viewer := decode[map[string]string](t, rec)["access_token"]

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/alerts", nil, admin).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/alerts", nil, viewer).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/devices", nil, viewer).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/devices", nil, "").Code)

	rec = do(t, h, http.MethodPost, "/activity/fs", map[string]any{"path": "/x"}, "")
	assert.Equal(t, http.StatusCreated, rec.Code, "ingestion stays open")
}

func TestOperationalEndpoints(t *testing.T) {
	h := newServer(t, false)

	rec := do(t, h, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "monitor_http_requests_total")

	rec = do(t, h, http.MethodOptions, "/blocked-sites", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = do(t, h, http.MethodPut, "/devices", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
