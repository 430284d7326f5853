package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crucible-dev/crucible/internal/config"
	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/ports/secondary"
	"github.com/crucible-dev/crucible/internal/core/services/language"
	"github.com/crucible-dev/crucible/internal/core/services/risk"
	"github.com/crucible-dev/crucible/internal/domain"
	"github.com/crucible-dev/crucible/internal/static/errs"
)

var _ ISubmissionPipeline = (*SubmissionPipeline)(nil)

const notifyTimeout = 5 * time.Second

// SubmissionPipeline orchestrates risk scoring, language resolution and
// sandbox execution, and owns the submission state machine
type SubmissionPipeline struct {
	store     secondary.SubmissionStore
	backend   secondary.ExecutionBackend
	scorer    risk.IRiskScorer
	resolver  language.ILanguageResolver
	publisher secondary.OutcomePublisher
	notifier  secondary.SubmitterNotifier
	logger    primary.Logger
	cfg       *config.PipelineConfig
}

// NewSubmissionPipeline creates a new submission pipeline
func NewSubmissionPipeline(
	store secondary.SubmissionStore,
	backend secondary.ExecutionBackend,
	scorer risk.IRiskScorer,
	resolver language.ILanguageResolver,
	publisher secondary.OutcomePublisher,
	notifier secondary.SubmitterNotifier,
	logger primary.Logger,
	cfg *config.PipelineConfig,
) *SubmissionPipeline {
	return &SubmissionPipeline{
		store:     store,
		backend:   backend,
		scorer:    scorer,
		resolver:  resolver,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
	}
}

// Submit runs one submission through the full pipeline
func (p *SubmissionPipeline) Submit(ctx context.Context, intake SubmissionIntake) (*domain.Outcome, error) {
	// Precondition, not a state: an oversized submission is never created
	if len(intake.Code) > p.cfg.MaxCodeLength {
		return nil, fmt.Errorf("code length %d exceeds limit %d: %w",
			len(intake.Code), p.cfg.MaxCodeLength, errs.ErrCodeTooLong)
	}

	submission := domain.NewSubmission(
		intake.ContextID, intake.SubmitterID, intake.Language, intake.Code, intake.Dependencies)

	p.logger.Info("Submission intake",
		"submissionId", submission.ID,
		"contextId", submission.ContextID,
		"language", submission.Language)

	if err := p.store.CreateSubmission(ctx, submission); err != nil {
		p.logger.Error("Failed to create submission", "submissionId", submission.ID, "error", err)
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	// The assessment summary is persisted whatever the disposition
	assessment := p.scorer.Assess(submission.Code)
	summary := assessment.Summary(submission.Code)
	if err := p.store.UpdateSubmission(ctx, submission.ID, secondary.SubmissionUpdate{
		RiskSummary: &summary,
	}); err != nil {
		p.logger.Error("Failed to persist risk summary", "submissionId", submission.ID, "error", err)
		return nil, fmt.Errorf("failed to persist risk summary: %w", err)
	}

	// The threshold is inclusive: a score equal to it rejects
	if assessment.Score >= p.cfg.RejectThreshold {
		return p.reject(ctx, submission, assessment, summary)
	}

	languageID, resolved := p.resolver.Resolve(ctx, submission.Language)
	if !resolved {
		return p.languageUnresolved(ctx, submission, assessment)
	}

	execution := p.backend.Execute(ctx, languageID, submission.Code, p.cfg.ExecTimeout)
	if execution.Failed() {
		return p.executionFailed(ctx, submission, assessment, execution.FailureReason)
	}

	return p.completed(ctx, submission, assessment, execution.Result)
}

// GetSubmission retrieves a submission by ID
func (p *SubmissionPipeline) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	submission, err := p.store.GetSubmission(ctx, submissionID)
	if err != nil {
		p.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return submission, nil
}

func (p *SubmissionPipeline) reject(
	ctx context.Context,
	submission *domain.Submission,
	assessment domain.RiskAssessment,
	summary string,
) (*domain.Outcome, error) {
	if err := p.transition(ctx, submission, domain.StatusRejected, secondary.SubmissionUpdate{}); err != nil {
		return nil, err
	}

	p.logger.Info("Submission rejected by risk gate",
		"submissionId", submission.ID, "score", assessment.Score)

	p.notify(submission.SubmitterID, fmt.Sprintf(
		"Your submission %s was rejected (risk score %d).\n%s",
		submission.ID, assessment.Score, truncate(summary, 1000)))

	return &domain.Outcome{
		SubmissionID: submission.ID,
		Status:       domain.StatusRejected,
		RiskScore:    assessment.Score,
		Reasons:      assessment.Reasons(),
	}, nil
}

func (p *SubmissionPipeline) languageUnresolved(
	ctx context.Context,
	submission *domain.Submission,
	assessment domain.RiskAssessment,
) (*domain.Outcome, error) {
	if err := p.transition(ctx, submission, domain.StatusLanguageUnresolved, secondary.SubmissionUpdate{}); err != nil {
		return nil, err
	}

	known := p.resolver.CatalogSample(ctx, p.cfg.CatalogSampleSize)
	p.logger.Info("Submission language unresolved",
		"submissionId", submission.ID, "language", submission.Language)

	message := fmt.Sprintf("Language %q was not recognized by the execution backend.", submission.Language)
	if len(known) > 0 {
		message += " Known languages include: " + strings.Join(known, ", ")
	}
	p.notify(submission.SubmitterID, message)

	return &domain.Outcome{
		SubmissionID:   submission.ID,
		Status:         domain.StatusLanguageUnresolved,
		RiskScore:      assessment.Score,
		Reasons:        assessment.Reasons(),
		KnownLanguages: known,
	}, nil
}

func (p *SubmissionPipeline) executionFailed(
	ctx context.Context,
	submission *domain.Submission,
	assessment domain.RiskAssessment,
	reason string,
) (*domain.Outcome, error) {
	if err := p.transition(ctx, submission, domain.StatusExecutionFailed, secondary.SubmissionUpdate{
		Stderr: &reason,
	}); err != nil {
		return nil, err
	}

	p.logger.Warn("Submission execution failed",
		"submissionId", submission.ID, "reason", reason)

	outcome := &domain.Outcome{
		SubmissionID:  submission.ID,
		Status:        domain.StatusExecutionFailed,
		RiskScore:     assessment.Score,
		Reasons:       assessment.Reasons(),
		Stderr:        reason,
		FailureReason: reason,
	}

	p.notify(submission.SubmitterID, fmt.Sprintf(
		"Execution of submission %s failed: %s\nThe submission was still added to the review queue.",
		submission.ID, truncate(reason, 1000)))

	// Static review already happened, so the record keeps its value:
	// failed executions are published rather than silently dropped
	p.publish(ctx, submission, outcome)

	return outcome, nil
}

func (p *SubmissionPipeline) completed(
	ctx context.Context,
	submission *domain.Submission,
	assessment domain.RiskAssessment,
	result *domain.ExecutionResult,
) (*domain.Outcome, error) {
	analysis := executionAnalysis(result)
	if err := p.transition(ctx, submission, domain.StatusCompleted, secondary.SubmissionUpdate{
		RiskSummary: &analysis,
		Stdout:      &result.Stdout,
		Stderr:      &result.Stderr,
	}); err != nil {
		return nil, err
	}

	p.logger.Info("Submission completed",
		"submissionId", submission.ID,
		"execStatus", result.StatusDescription,
		"timeMs", result.ExecutionTimeMs)

	outcome := &domain.Outcome{
		SubmissionID:    submission.ID,
		Status:          domain.StatusCompleted,
		RiskScore:       assessment.Score,
		Reasons:         assessment.Reasons(),
		Stdout:          result.Stdout,
		Stderr:          result.Stderr,
		CompileOutput:   result.CompileOutput,
		ExecutionTimeMs: result.ExecutionTimeMs,
		MemoryUsedKb:    result.MemoryUsedKb,
	}

	p.notify(submission.SubmitterID, fmt.Sprintf(
		"Your submission %s was executed and published for review.", submission.ID))
	p.publish(ctx, submission, outcome)

	return outcome, nil
}

// transition moves the submission to a terminal state, enforcing the
// monotonic state machine before touching the store
func (p *SubmissionPipeline) transition(
	ctx context.Context,
	submission *domain.Submission,
	next domain.Status,
	update secondary.SubmissionUpdate,
) error {
	if !submission.Status.CanTransitionTo(next) {
		return fmt.Errorf("illegal transition %s -> %s for submission %s",
			submission.Status, next, submission.ID)
	}

	update.Status = &next
	if err := p.store.UpdateSubmission(ctx, submission.ID, update); err != nil {
		p.logger.Error("Failed to persist transition",
			"submissionId", submission.ID, "status", next, "error", err)
		return fmt.Errorf("failed to persist transition to %s: %w", next, err)
	}

	submission.Status = next
	return nil
}

// publish delivers the outcome to the context's review destination, if one
// is configured. Publish problems never fail the pipeline.
func (p *SubmissionPipeline) publish(ctx context.Context, submission *domain.Submission, outcome *domain.Outcome) {
	destinationID, err := p.store.GetReviewDestination(ctx, submission.ContextID)
	if err != nil {
		p.logger.Error("Failed to look up review destination",
			"contextId", submission.ContextID, "error", err)
		return
	}
	if destinationID == "" {
		p.logger.Warn("No review destination configured, skipping publish",
			"contextId", submission.ContextID, "submissionId", submission.ID)
		return
	}

	if err := p.publisher.PublishOutcome(ctx, destinationID, outcome); err != nil {
		p.logger.Error("Failed to publish outcome",
			"submissionId", submission.ID, "destinationId", destinationID, "error", err)
	}
}

// notify delivers a submitter notice asynchronously so a slow notification
// channel never blocks the pipeline
func (p *SubmissionPipeline) notify(submitterID, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := p.notifier.NotifySubmitter(ctx, submitterID, message); err != nil {
			p.logger.Warn("Failed to notify submitter", "submitterId", submitterID, "error", err)
		}
	}()
}

func executionAnalysis(result *domain.ExecutionResult) string {
	return fmt.Sprintf(
		"Execution analysis:\nExit status: %s\nStdout (short):\n```\n%s\n```\nStderr (short):\n```\n%s\n```",
		result.StatusDescription, truncate(result.Stdout, 800), truncate(result.Stderr, 800))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
