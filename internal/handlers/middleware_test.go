package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucible-dev/crucible/internal/adapter/crypto"
	"github.com/crucible-dev/crucible/internal/config"
	"github.com/crucible-dev/crucible/internal/handlers"
)

func TestJWTMiddleware(t *testing.T) {
	t.Parallel()
	tokenService := crypto.NewTokenService(&config.JwtConfig{Secret: "test-secret"})
	provider := handlers.New(tokenService)

	var gotSubject string
	protected := provider.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = handlers.SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/languages", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := tokenService.IssueToken(context.Background(), "user-7", time.Hour)
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotSubject != "user-7" {
			t.Errorf("subject = %q, want user-7", gotSubject)
		}
	})
}
