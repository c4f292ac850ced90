package middleware

import (
	"net/http"
	"strconv"
	"time"

	"monitor-hub/backend/app/metrics"
	"monitor-hub/backend/global"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	route  string
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) SetRoute(route string) { w.route = route }

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: 200, route: "unmatched"}
		next.ServeHTTP(sw, r)
		duration := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(r.Method, sw.route, strconv.Itoa(sw.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, sw.route).Observe(duration.Seconds())

		ev := global.Logger.Info()
		if sw.status >= 500 {
			ev = global.Logger.Error()
		}
		ev.Str("ip", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", duration).
			Str("request_id", RequestID(r.Context())).
			Msg("request")
	})
}
