package crypto_test

import (
	"context"
	"testing"
	"time"

	"github.com/crucible-dev/crucible/internal/adapter/crypto"
	"github.com/crucible-dev/crucible/internal/config"
)

func TestTokenRoundtrip(t *testing.T) {
	t.Parallel()
	svc := crypto.NewTokenService(&config.JwtConfig{Secret: "test-secret"})
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "user-42", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	subject, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if subject != "user-42" {
		t.Errorf("subject = %q, want user-42", subject)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	t.Parallel()
	svc := crypto.NewTokenService(&config.JwtConfig{Secret: "test-secret"})

	if _, err := svc.VerifyToken(context.Background(), "not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()
	issuer := crypto.NewTokenService(&config.JwtConfig{Secret: "secret-a"})
	verifier := crypto.NewTokenService(&config.JwtConfig{Secret: "secret-b"})
	ctx := context.Background()

	token, err := issuer.IssueToken(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := verifier.VerifyToken(ctx, token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()
	svc := crypto.NewTokenService(&config.JwtConfig{Secret: "test-secret"})
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "user-1", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := svc.VerifyToken(ctx, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}
