package submissions

import (
	"github.com/crucible-dev/crucible/internal/domain"
)

// CreateSubmissionRequest represents a request to submit code for review
type CreateSubmissionRequest struct {
	ContextID    string   `json:"contextId"`
	Language     string   `json:"language"`
	Code         string   `json:"code"`
	Dependencies []string `json:"dependencies"`
}

// CastVoteRequest represents a request to vote on a submission
type CastVoteRequest struct {
	Direction int `json:"direction"`
}

// SubmissionResponse represents a submission together with its vote tally
type SubmissionResponse struct {
	*domain.Submission
	Votes *domain.VoteTally `json:"votes"`
}
