package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/ledger_processor/service"
	"github.com/retail-ledger-engine/internal/platform/messaging/producers"
)

// CommandHandler handles ledger command messages from Kafka
type CommandHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

func NewCommandHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *CommandHandler {
	return &CommandHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage parses the envelope and hands it to the processing service.
// Envelopes that can never be parsed are parked on the DLQ.
func (h *CommandHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	cmd, err := command.Parse(value)
	if err != nil {
		h.logger.Error("Failed to parse ledger command from Kafka message",
			"error", err,
			"message_key", string(key),
		)

		if h.producer != nil {
			dlqReason := fmt.Sprintf("unprocessable command: %s", err.Error())
			dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason)
			if errors.Is(dlqErr, producers.ErrDLQDisabled) {
				// Redelivery cannot fix a malformed envelope
				h.logger.Warn("DLQ disabled, dropping unprocessable message", "message_key", string(key))
				return nil
			}
			if dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after parse error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				return nil
			}
		}
		return fmt.Errorf("failed to parse command message: %w", err)
	}

	logger := h.logger
	if cmd.CorrelationID != "" {
		logger = h.logger.With("correlation_id", cmd.CorrelationID)
	}

	logger.Info("Received ledger command",
		"command_id", cmd.CommandID.String(),
		"type", cmd.Type,
		"actor_id", cmd.ActorID.String(),
	)

	if err := h.processingService.ProcessCommand(ctx, cmd); err != nil {
		logger.Error("Failed to process command", "command_id", cmd.CommandID.String(), "error", err)
		return fmt.Errorf("processing command %s failed: %w", cmd.CommandID, err)
	}
	return nil
}
