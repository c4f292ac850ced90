package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

type routeSetter interface {
	SetRoute(string)
}

// TagRoute records the matched mux path template on the response writer so
// Logging can label metrics without per-URL cardinality. Install it with
// Router.Use.
func TagRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if setter, ok := w.(routeSetter); ok {
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					setter.SetRoute(tpl)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
