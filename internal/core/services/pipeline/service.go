package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/crucible-dev/crucible/internal/domain"
)

// SubmissionIntake carries the raw inputs of a new submission
type SubmissionIntake struct {
	ContextID    string
	SubmitterID  string
	Language     string
	Code         string
	Dependencies []string
}

// ISubmissionPipeline defines the interface for the review-and-execution
// pipeline
type ISubmissionPipeline interface {
	// Submit takes a raw submission through risk scoring, language
	// resolution and sandbox execution, and returns the terminal outcome.
	// An error is returned only for the code-too-long precondition and for
	// persistence failures; every accepted intake reaches exactly one of
	// the four terminal dispositions.
	Submit(ctx context.Context, intake SubmissionIntake) (*domain.Outcome, error)

	// GetSubmission retrieves a submission by ID, nil if not found
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)
}
