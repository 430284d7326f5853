package vote

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/ports/secondary"
	"github.com/crucible-dev/crucible/internal/domain"
	"github.com/crucible-dev/crucible/internal/static/errs"
)

var _ IVoteService = (*VoteService)(nil)

// VoteService implements voting over the submission store
type VoteService struct {
	store  secondary.SubmissionStore
	logger primary.Logger
}

// NewVoteService creates a new vote service
func NewVoteService(store secondary.SubmissionStore, logger primary.Logger) *VoteService {
	return &VoteService{
		store:  store,
		logger: logger,
	}
}

// CastVote upserts the voter's direction and returns the updated tally
func (s *VoteService) CastVote(ctx context.Context, submissionID uuid.UUID, voterID string, direction int) (*domain.VoteTally, error) {
	if direction != 1 && direction != -1 {
		return nil, errs.ErrInvalidVoteDirection
	}

	submission, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("Failed to get submission for vote", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, errs.ErrSubmissionNotFound
	}

	if err := s.store.UpsertVote(ctx, submissionID, voterID, direction); err != nil {
		s.logger.Error("Failed to record vote",
			"submissionId", submissionID, "voterId", voterID, "error", err)
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	return s.GetTally(ctx, submissionID)
}

// GetTally recomputes the current tally for a submission
func (s *VoteService) GetTally(ctx context.Context, submissionID uuid.UUID) (*domain.VoteTally, error) {
	tally, err := s.store.GetVoteTally(ctx, submissionID)
	if err != nil {
		s.logger.Error("Failed to get vote tally", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get vote tally: %w", err)
	}
	return tally, nil
}
