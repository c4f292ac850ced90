package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "monitor-hub/backend/app/jwt"
	"monitor-hub/backend/app/models"
)

// Auth guards console endpoints with bearer tokens. When Enabled is false
// every request passes through.
type Auth struct {
	Signer  *jwtutil.Signer
	Enabled bool
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	if !a.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parse(r)
		if !ok {
			deny(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	if !a.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parse(r)
		if !ok {
			deny(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if claims.Role != models.RoleAdmin {
			deny(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func (a *Auth) parse(r *http.Request) (*jwtutil.Claims, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, false
	}
	claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
