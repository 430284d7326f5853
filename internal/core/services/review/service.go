package review

import "context"

// IReviewConfigService manages the per-context review destination that
// terminal outcomes are published to
type IReviewConfigService interface {
	// GetDestination returns the destination for a context, empty if unset
	GetDestination(ctx context.Context, contextID string) (string, error)

	// SetDestination configures the destination for a context
	SetDestination(ctx context.Context, contextID, destinationID string) error
}
