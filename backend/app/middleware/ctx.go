package middleware

import (
	"context"

	jwtutil "monitor-hub/backend/app/jwt"
)

type ctxKey int

const (
	claimsKey ctxKey = iota + 1
	requestIDKey
)

func GetClaims(ctx context.Context) *jwtutil.Claims {
	if v := ctx.Value(claimsKey); v != nil {
		if c, ok := v.(*jwtutil.Claims); ok {
			return c
		}
	}
	return nil
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
