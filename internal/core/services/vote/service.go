package vote

import (
	"context"

	"github.com/google/uuid"

	"github.com/crucible-dev/crucible/internal/domain"
)

// IVoteService defines the interface for community voting on published
// submissions
type IVoteService interface {
	// CastVote records a voter's verdict (last write wins per voter) and
	// returns the recomputed tally
	CastVote(ctx context.Context, submissionID uuid.UUID, voterID string, direction int) (*domain.VoteTally, error)

	// GetTally recomputes the current tally for a submission
	GetTally(ctx context.Context, submissionID uuid.UUID) (*domain.VoteTally, error)
}
