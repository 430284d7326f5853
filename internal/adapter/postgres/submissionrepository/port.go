// package submissionrepository contains the PostgreSQL implementation of
// the submission store
package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/ports/secondary"
	"github.com/crucible-dev/crucible/internal/domain"
	querybuilder "github.com/crucible-dev/crucible/internal/utils"
)

var _ secondary.SubmissionStore = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionStore interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSubmission persists a new submission
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (
			id, context_id, submitter_id, language, code, dependencies,
			status, risk_summary, stdout, stderr, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.ContextID,
		submission.SubmitterID,
		submission.Language,
		submission.Code,
		pq.Array(submission.Dependencies),
		submission.Status,
		submission.RiskSummary,
		submission.Stdout,
		submission.Stderr,
		submission.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create submission", "error", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// GetSubmission retrieves a submission from PostgreSQL by ID
func (r *SubmissionRepository) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT id, context_id, submitter_id, language, code, dependencies,
			   status, risk_summary, stdout, stderr, created_at
		FROM submissions
		WHERE id = $1
	`

	var submission domain.Submission
	var dependencies pq.StringArray

	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&submission.ID,
		&submission.ContextID,
		&submission.SubmitterID,
		&submission.Language,
		&submission.Code,
		&dependencies,
		&submission.Status,
		&submission.RiskSummary,
		&submission.Stdout,
		&submission.Stderr,
		&submission.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	submission.Dependencies = dependencies
	return &submission, nil
}

// UpdateSubmission applies a partial update to a submission
func (r *SubmissionRepository) UpdateSubmission(ctx context.Context, submissionID uuid.UUID, update secondary.SubmissionUpdate) error {
	tbl := domain.GetSubmissionTable()

	data := querybuilder.UpdateData{}
	if update.Status != nil {
		data[tbl.Status] = *update.Status
	}
	if update.RiskSummary != nil {
		data[tbl.RiskSummary] = *update.RiskSummary
	}
	if update.Stdout != nil {
		data[tbl.Stdout] = *update.Stdout
	}
	if update.Stderr != nil {
		data[tbl.Stderr] = *update.Stderr
	}
	if len(data) == 0 {
		return nil
	}

	query, args := querybuilder.NewQueryBuilder("").
		Update(tbl.TableName(), data).
		Where(tbl.ID+" = ?", submissionID).
		Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update submission", "error", err)
		return fmt.Errorf("failed to update submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Error checking rows affected", "error", err)
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("submission not found: %s", submissionID)
	}

	return nil
}

// UpsertVote records a vote; a voter re-voting overwrites their direction
func (r *SubmissionRepository) UpsertVote(ctx context.Context, submissionID uuid.UUID, voterID string, direction int) error {
	query := `
		INSERT INTO votes (submission_id, voter_id, direction)
		VALUES ($1, $2, $3)
		ON CONFLICT (submission_id, voter_id) DO UPDATE SET
			direction = EXCLUDED.direction
	`

	_, err := r.db.ExecContext(ctx, query, submissionID, voterID, direction)
	if err != nil {
		r.logger.Error("Failed to upsert vote", "error", err)
		return fmt.Errorf("failed to upsert vote: %w", err)
	}

	return nil
}

// GetVoteTally recomputes the aggregate vote standing of a submission
func (r *SubmissionRepository) GetVoteTally(ctx context.Context, submissionID uuid.UUID) (*domain.VoteTally, error) {
	query := `
		SELECT COALESCE(SUM(direction), 0) AS score, COUNT(*) AS count
		FROM votes
		WHERE submission_id = $1
	`

	var tally domain.VoteTally
	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(&tally.Score, &tally.Count)
	if err != nil {
		r.logger.Error("Failed to get vote tally", "error", err)
		return nil, fmt.Errorf("failed to get vote tally: %w", err)
	}

	return &tally, nil
}

// GetReviewDestination returns the review destination configured for a
// context, empty if none is set
func (r *SubmissionRepository) GetReviewDestination(ctx context.Context, contextID string) (string, error) {
	query := `
		SELECT destination_id
		FROM review_destinations
		WHERE context_id = $1
	`

	var destinationID string
	err := r.db.QueryRowContext(ctx, query, contextID).Scan(&destinationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		r.logger.Error("Failed to get review destination", "error", err)
		return "", fmt.Errorf("failed to get review destination: %w", err)
	}

	return destinationID, nil
}

// SetReviewDestination configures the review destination for a context
func (r *SubmissionRepository) SetReviewDestination(ctx context.Context, contextID, destinationID string) error {
	query := `
		INSERT INTO review_destinations (context_id, destination_id)
		VALUES ($1, $2)
		ON CONFLICT (context_id) DO UPDATE SET
			destination_id = EXCLUDED.destination_id
	`

	_, err := r.db.ExecContext(ctx, query, contextID, destinationID)
	if err != nil {
		r.logger.Error("Failed to set review destination", "error", err)
		return fmt.Errorf("failed to set review destination: %w", err)
	}

	return nil
}
