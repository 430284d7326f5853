package primary

import (
	"context"
	"time"
)

// TokenService issues and verifies the bearer tokens that carry the
// submitter identity on API requests.
type TokenService interface {
	// IssueToken creates a signed token for the given subject
	IssueToken(ctx context.Context, subject string, ttl time.Duration) (string, error)

	// VerifyToken validates a token and returns its subject
	VerifyToken(ctx context.Context, token string) (string, error)
}
