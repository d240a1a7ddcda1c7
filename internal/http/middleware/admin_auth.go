package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ctxKeyAdminClaims contextKey = "adminClaims"

// AdminJWT enforces an HMAC-signed bearer token on mutating endpoints.
// An empty secret rejects everything, so a misconfigured deployment
// fails closed.
func AdminJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "admin auth disabled", http.StatusUnauthorized)
				return
			}
			claims, err := parseAdminToken(r.Header.Get("Authorization"), secret)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyAdminClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type authError string

func (e authError) Error() string { return string(e) }

func parseAdminToken(header, secret string) (jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return claims, authError("missing bearer token")
	}

	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return claims, authError("invalid or expired token")
	}
	return claims, nil
}

// AdminClaimsFromContext returns admin JWT claims if present.
func AdminClaimsFromContext(ctx context.Context) (jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(ctxKeyAdminClaims).(jwt.RegisteredClaims)
	return claims, ok
}
