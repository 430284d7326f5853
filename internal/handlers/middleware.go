package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
)

type contextKey string

const subjectContextKey contextKey = "subject"

type MiddlewareProvider struct {
	tokenService primary.TokenService
}

func New(tokenService primary.TokenService) *MiddlewareProvider {
	return &MiddlewareProvider{
		tokenService: tokenService,
	}
}

// JWTMiddleware verifies the bearer token and stashes its subject in the
// request context as the caller identity
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		subject, err := m.tokenService.VerifyToken(r.Context(), tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), subjectContextKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFromContext returns the authenticated caller identity, empty if
// the request did not pass through JWTMiddleware
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectContextKey).(string)
	return subject
}
