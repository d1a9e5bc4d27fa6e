package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/retail-ledger-engine/internal/domain/audit"
	"github.com/retail-ledger-engine/internal/domain/outbox"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/platform/messaging/producers"
)

// AuditPublisher delivers one outbox message to the audit trail and the events topic
type AuditPublisher interface {
	Publish(ctx context.Context, message *outbox.Message) error
}

// AuditPublisherImpl stores the event in the audit repository, publishes it to Kafka and
// marks the outbox message PROCESSED. Both sinks tolerate redelivery of the same event ID.
type AuditPublisherImpl struct {
	outboxRepo outbox.Repository
	auditRepo  audit.Repository
	events     producers.EventPublisher
	logger     *slog.Logger
}

func NewAuditPublisher(
	outboxRepo outbox.Repository,
	auditRepo audit.Repository,
	events producers.EventPublisher,
	logger *slog.Logger,
) AuditPublisher {
	return &AuditPublisherImpl{
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		events:     events,
		logger:     logger,
	}
}

func (p *AuditPublisherImpl) Publish(ctx context.Context, message *outbox.Message) error {
	event, err := message.GetEvent()
	if err != nil {
		p.logger.Error("Failed to unmarshal audit event from outbox payload",
			"outbox_id", message.ID, "event_id", message.EventID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if event.CorrelationID != "" {
		logger = p.logger.With("correlation_id", event.CorrelationID)
	}
	logger = logger.With("outbox_id", message.ID, "event_id", event.EventID.String())

	if err := p.auditRepo.Create(ctx, event); err != nil {
		logger.Error("Failed to store audit event", "error", err)
		return fmt.Errorf("failed to store audit event %s: %w", event.EventID, err)
	}

	if err := p.events.PublishEvent(ctx, event); err != nil {
		logger.Error("Failed to publish ledger event", "error", err)
		return fmt.Errorf("failed to publish ledger event %s: %w", event.EventID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED", "error", err)
		return fmt.Errorf("event %s delivered, but failed to mark outbox %d as PROCESSED: %w", event.EventID, message.ID, err)
	}

	logger.Info("Outbox message delivered and marked as PROCESSED",
		"entity_type", event.EntityType, "entity_id", event.EntityID.String(), "operation", event.Operation)
	return nil
}
