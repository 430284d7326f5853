package review

import (
	"context"
	"fmt"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/ports/secondary"
	"github.com/crucible-dev/crucible/internal/static/errs"
)

var _ IReviewConfigService = (*ReviewConfigService)(nil)

// ReviewConfigService implements review-destination configuration over the
// submission store
type ReviewConfigService struct {
	store  secondary.SubmissionStore
	logger primary.Logger
}

// NewReviewConfigService creates a new review config service
func NewReviewConfigService(store secondary.SubmissionStore, logger primary.Logger) *ReviewConfigService {
	return &ReviewConfigService{
		store:  store,
		logger: logger,
	}
}

// GetDestination returns the destination for a context, empty if unset
func (s *ReviewConfigService) GetDestination(ctx context.Context, contextID string) (string, error) {
	destination, err := s.store.GetReviewDestination(ctx, contextID)
	if err != nil {
		s.logger.Error("Failed to get review destination", "contextId", contextID, "error", err)
		return "", fmt.Errorf("failed to get review destination: %w", err)
	}
	return destination, nil
}

// SetDestination configures the destination for a context
func (s *ReviewConfigService) SetDestination(ctx context.Context, contextID, destinationID string) error {
	if contextID == "" || destinationID == "" {
		return errs.ErrInvalidReviewDestination
	}

	if err := s.store.SetReviewDestination(ctx, contextID, destinationID); err != nil {
		s.logger.Error("Failed to set review destination",
			"contextId", contextID, "destinationId", destinationID, "error", err)
		return fmt.Errorf("failed to set review destination: %w", err)
	}

	s.logger.Info("Review destination updated", "contextId", contextID, "destinationId", destinationID)
	return nil
}
