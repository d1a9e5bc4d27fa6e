package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/retail-ledger-engine/internal/config"
	"github.com/segmentio/kafka-go"
)

// CommandProducer enqueues ledger mutation commands for the processor
type CommandProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewCommandProducer ensures the command topic exists and opens an async writer on it
func NewCommandProducer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*CommandProducer, error) {
	if cfg.CommandTopic == "" {
		return nil, fmt.Errorf("kafka command topic is not configured")
	}
	if err := ensureTopic(cfg, cfg.CommandTopic, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure command topic %s exists: %w", cfg.CommandTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.CommandTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write commands asynchronously", "topic", cfg.CommandTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote commands asynchronously", "topic", cfg.CommandTopic, "count", len(messages))
			}
		},
	}

	return &CommandProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.CommandTopic,
	}, nil
}

// Publish writes value as JSON. Commands sharing a key land on the same partition and keep their order.
func (p *CommandProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish command", "topic", p.topic, "key", key, "error", err)
		return fmt.Errorf("failed to publish command to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published command", "topic", p.topic, "key", key)
	return nil
}

func (p *CommandProducer) Close() error {
	p.logger.Info("Closing command producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
