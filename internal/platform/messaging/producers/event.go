package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/retail-ledger-engine/internal/config"
	"github.com/retail-ledger-engine/internal/domain/audit"
	"github.com/segmentio/kafka-go"
)

// EventProducer publishes audit events of committed mutations, keyed by entity ID
type EventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewEventProducer opens a synchronous writer so the outbox only marks an event processed
// once every replica has it.
func NewEventProducer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*EventProducer, error) {
	if cfg.EventsTopic == "" {
		return nil, fmt.Errorf("kafka events topic is not configured")
	}
	if err := ensureTopic(cfg, cfg.EventsTopic, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure events topic %s exists: %w", cfg.EventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: cfg.MaxWait,
	}

	return &EventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.EventsTopic,
	}, nil
}

func (p *EventProducer) PublishEvent(ctx context.Context, event *audit.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event %s: %w", event.EventID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(event.EventID.String())},
			{Key: "entity-type", Value: []byte(event.EntityType)},
			{Key: "operation", Value: []byte(event.Operation)},
		},
	}
	if event.CorrelationID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "correlation-id", Value: []byte(event.CorrelationID)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish audit event",
			"topic", p.topic,
			"event_id", event.EventID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to publish audit event %s to %s: %w", event.EventID, p.topic, err)
	}

	p.logger.Debug("Published audit event", "topic", p.topic, "event_id", event.EventID.String())
	return nil
}

func (p *EventProducer) Close() error {
	p.logger.Info("Closing event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
