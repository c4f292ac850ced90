package router

import (
	"net/http"

	"monitor-hub/backend/app/controllers"
	"monitor-hub/backend/app/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers struct {
	Activity     *controllers.ActivityController
	Devices      *controllers.DeviceController
	BlockedSites *controllers.BlockedSiteController
	Alerts       *controllers.AlertController
	Auth         *controllers.AuthController
	Health       *controllers.HealthController
}

// NewRouter wires every endpoint. Agent ingestion stays open; console reads
// need a token and policy management needs an admin token when auth is
// enabled.
func NewRouter(c Controllers, mw *middleware.Auth) http.Handler {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(middleware.TagRoute)

	// agent ingestion
	r.HandleFunc("/activity/app", c.Activity.PostApp).Methods(http.MethodPost)
	r.HandleFunc("/activity/web", c.Activity.PostWeb).Methods(http.MethodPost)
	r.HandleFunc("/activity/fs", c.Activity.PostFs).Methods(http.MethodPost)
	r.HandleFunc("/device", c.Devices.Report).Methods(http.MethodPost)
	r.HandleFunc("/device/status", c.Devices.Status).Methods(http.MethodPost)

	// console reads
	r.Handle("/devices", mw.RequireAuth(http.HandlerFunc(c.Devices.List))).Methods(http.MethodGet)
	r.Handle("/activity/app", mw.RequireAuth(http.HandlerFunc(c.Activity.ListApp))).Methods(http.MethodGet)
	r.Handle("/activity/web", mw.RequireAuth(http.HandlerFunc(c.Activity.ListWeb))).Methods(http.MethodGet)
	r.Handle("/activity/web/recent", mw.RequireAuth(http.HandlerFunc(c.Activity.RecentWeb))).Methods(http.MethodGet)
	r.Handle("/activity/fs", mw.RequireAuth(http.HandlerFunc(c.Activity.ListFs))).Methods(http.MethodGet)

	// policy management and alerts
	r.Handle("/blocked-sites", mw.RequireAdmin(http.HandlerFunc(c.BlockedSites.List))).Methods(http.MethodGet)
	r.Handle("/blocked-sites", mw.RequireAdmin(http.HandlerFunc(c.BlockedSites.Create))).Methods(http.MethodPost)
	r.Handle("/blocked-sites/{url}", mw.RequireAdmin(http.HandlerFunc(c.BlockedSites.Update))).Methods(http.MethodPatch)
	r.Handle("/blocked-sites/{url}", mw.RequireAdmin(http.HandlerFunc(c.BlockedSites.Delete))).Methods(http.MethodDelete)
	r.Handle("/alerts", mw.RequireAdmin(http.HandlerFunc(c.Alerts.List))).Methods(http.MethodGet)

	r.HandleFunc("/login", c.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/healthz", c.Health.Healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", c.Health.Readyz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	var h http.Handler = r
	h = middleware.Logging(h)
	h = middleware.CORS(h)
	h = middleware.WithRequestID(h)
	return h
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
