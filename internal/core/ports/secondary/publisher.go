package secondary

import (
	"context"

	"github.com/crucible-dev/crucible/internal/domain"
)

// OutcomePublisher delivers terminal outcomes to a review destination for
// community voting. Publish failures are not fatal to the pipeline.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, destinationID string, outcome *domain.Outcome) error
}

// SubmitterNotifier delivers a direct notice to the submitting user
type SubmitterNotifier interface {
	NotifySubmitter(ctx context.Context, submitterID string, message string) error
}
