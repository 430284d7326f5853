package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a submission
type Status string

const (
	StatusReviewing          Status = "REVIEWING"
	StatusRejected           Status = "REJECTED"
	StatusLanguageUnresolved Status = "LANGUAGE_UNRESOLVED"
	StatusExecutionFailed    Status = "EXECUTION_FAILED"
	StatusCompleted          Status = "COMPLETED"
)

// Terminal reports whether no further automatic transition occurs from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusLanguageUnresolved, StatusExecutionFailed, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is legal.
// Transitions are monotonic: REVIEWING may move to any terminal state,
// terminal states never move again.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusReviewing && next.Terminal()
}

// Submission represents a code submission tracked through the review pipeline
type Submission struct {
	ID           uuid.UUID `db:"id"`
	ContextID    string    `db:"context_id"`
	SubmitterID  string    `db:"submitter_id"`
	Language     string    `db:"language"`
	Code         string    `db:"code"`
	Dependencies []string  `db:"dependencies"`
	Status       Status    `db:"status"`
	RiskSummary  string    `db:"risk_summary"`
	Stdout       string    `db:"stdout"`
	Stderr       string    `db:"stderr"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewSubmission creates a new submission in the initial REVIEWING state
func NewSubmission(contextID, submitterID, language, code string, dependencies []string) *Submission {
	return &Submission{
		ID:           uuid.New(),
		ContextID:    contextID,
		SubmitterID:  submitterID,
		Language:     language,
		Code:         code,
		Dependencies: dependencies,
		Status:       StatusReviewing,
		CreatedAt:    time.Now(),
	}
}

type SubmissionTable struct {
	ID           string
	ContextID    string
	SubmitterID  string
	Language     string
	Code         string
	Dependencies string
	Status       string
	RiskSummary  string
	Stdout       string
	Stderr       string
	CreatedAt    string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:           "id",
		ContextID:    "context_id",
		SubmitterID:  "submitter_id",
		Language:     "language",
		Code:         "code",
		Dependencies: "dependencies",
		Status:       "status",
		RiskSummary:  "risk_summary",
		Stdout:       "stdout",
		Stderr:       "stderr",
		CreatedAt:    "created_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}

// Vote represents one voter's verdict on a submission. At most one vote per
// (submission, voter) pair exists; a re-vote overwrites the direction.
type Vote struct {
	SubmissionID uuid.UUID `db:"submission_id"`
	VoterID      string    `db:"voter_id"`
	Direction    int       `db:"direction"`
}

// VoteTally is the aggregate vote standing of a submission
type VoteTally struct {
	Score int `json:"score"`
	Count int `json:"count"`
}
