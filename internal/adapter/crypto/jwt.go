package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crucible-dev/crucible/internal/config"
	"github.com/crucible-dev/crucible/internal/core/ports/primary"
)

var _ primary.TokenService = (*TokenServiceImpl)(nil)

var ErrInvalidToken = fmt.Errorf("invalid token")

// TokenServiceImpl signs and verifies HMAC bearer tokens carrying the
// submitter identity as the subject claim
type TokenServiceImpl struct {
	secret []byte
}

func NewTokenService(jwtConfig *config.JwtConfig) primary.TokenService {
	return &TokenServiceImpl{
		secret: []byte(jwtConfig.Secret),
	}
}

// IssueToken creates a signed HS256 token for the given subject
func (s *TokenServiceImpl) IssueToken(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// VerifyToken validates a token and returns its subject
func (s *TokenServiceImpl) VerifyToken(ctx context.Context, token string) (string, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsedToken.Valid {
		return "", ErrInvalidToken
	}

	subject, err := parsedToken.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
