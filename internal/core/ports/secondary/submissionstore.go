package secondary

import (
	"context"

	"github.com/google/uuid"

	"github.com/crucible-dev/crucible/internal/domain"
)

// SubmissionUpdate carries the fields of a partial submission update.
// Nil fields are left untouched.
type SubmissionUpdate struct {
	Status      *domain.Status
	RiskSummary *string
	Stdout      *string
	Stderr      *string
}

type SubmissionStore interface {
	// CreateSubmission persists a new submission
	CreateSubmission(ctx context.Context, submission *domain.Submission) error

	// GetSubmission retrieves a submission by ID, nil if not found
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)

	// UpdateSubmission applies a partial update to a submission
	UpdateSubmission(ctx context.Context, submissionID uuid.UUID, update SubmissionUpdate) error

	// UpsertVote records a vote, overwriting the voter's previous direction
	UpsertVote(ctx context.Context, submissionID uuid.UUID, voterID string, direction int) error

	// GetVoteTally recomputes the aggregate vote standing of a submission
	GetVoteTally(ctx context.Context, submissionID uuid.UUID) (*domain.VoteTally, error)

	// GetReviewDestination returns the review destination configured for a
	// context, empty if none is set
	GetReviewDestination(ctx context.Context, contextID string) (string, error)

	// SetReviewDestination configures the review destination for a context
	SetReviewDestination(ctx context.Context, contextID, destinationID string) error
}
