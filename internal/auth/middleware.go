// Package auth resolves the caller's identity from a bearer JWT before any
// extraction, model, or persistence work happens.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Middleware struct {
	secret []byte
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: []byte(secret)}
}

// Authenticate verifies the bearer token and stores the resolved user id in
// the request context. Every verification failure — absent, malformed,
// expired, bad signature — is reported uniformly as 401 unauthenticated.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.Resolve(extractBearerToken(r))
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Resolve verifies a raw bearer token and returns the user id it carries.
func (m *Middleware) Resolve(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("missing token")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return "", fmt.Errorf("token expired")
	}

	if claims.Sub == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Sub, nil
}

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext returns the authenticated user id, or "" outside an
// authenticated request.
func UserFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userKey).(string)
	return id
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated"})
}
