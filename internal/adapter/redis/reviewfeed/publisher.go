package reviewfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/ports/secondary"
	"github.com/crucible-dev/crucible/internal/domain"
)

const (
	reviewChannelPrefix = "review:"
	notifyChannelPrefix = "notify:user:"
)

var (
	_ secondary.OutcomePublisher  = (*Publisher)(nil)
	_ secondary.SubmitterNotifier = (*Publisher)(nil)
)

// Publisher delivers pipeline outcomes and submitter notices over Redis
// pub/sub channels. The presentation layer subscribes and renders; the
// pipeline never talks to it directly.
type Publisher struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewPublisher creates a new Redis outcome publisher
func NewPublisher(redisClient *redis.Client, logger primary.Logger) *Publisher {
	return &Publisher{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishOutcome publishes a terminal outcome to the review destination's
// channel
func (p *Publisher) PublishOutcome(ctx context.Context, destinationID string, outcome *domain.Outcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		p.logger.Error("Failed to marshal outcome", "error", err)
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	channel := reviewChannelPrefix + destinationID
	if err := p.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Error("Failed to publish outcome", "channel", channel, "error", err)
		return fmt.Errorf("failed to publish outcome: %w", err)
	}

	p.logger.Debug("Outcome published", "channel", channel, "submissionId", outcome.SubmissionID)
	return nil
}

// submitterNotice is the payload delivered on a submitter's notify channel
type submitterNotice struct {
	SubmitterID string    `json:"submitterId"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sentAt"`
}

// NotifySubmitter publishes a direct notice to the submitter's channel
func (p *Publisher) NotifySubmitter(ctx context.Context, submitterID string, message string) error {
	payload, err := json.Marshal(submitterNotice{
		SubmitterID: submitterID,
		Message:     message,
		SentAt:      time.Now(),
	})
	if err != nil {
		p.logger.Error("Failed to marshal notice", "error", err)
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	channel := notifyChannelPrefix + submitterID
	if err := p.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Error("Failed to publish notice", "channel", channel, "error", err)
		return fmt.Errorf("failed to publish notice: %w", err)
	}

	return nil
}
