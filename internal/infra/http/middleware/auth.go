package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

type contextKey string

const identityKey contextKey = "identity"

// Claims as issued by the identity provider. Role decides the permission
// tier; email doubles as the reservation holder key.
type AccessClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator validates the bearer token and stashes the caller identity
// in the request context.
func Authenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				unauthorized(w, "missing authorization token")
				return
			}

			claims := &AccessClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			email := claims.Subject
			if email == "" {
				unauthorized(w, "token has no subject")
				return
			}

			identity := entity.Identity{
				Email: email,
				Name:  claims.Name,
				Role:  entity.ParseRole(claims.Role),
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a route subtree. Must run after Authenticator.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				unauthorized(w, "authentication required")
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "insufficient role"})
		})
	}
}

func IdentityFrom(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(entity.Identity)
	return identity, ok
}

// WithIdentity is the test hook for handler tests.
func WithIdentity(ctx context.Context, identity entity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
