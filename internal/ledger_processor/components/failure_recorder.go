package components

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/ledger_processor/service"
	"github.com/retail-ledger-engine/internal/platform/messaging/producers"
)

// DLQFailureRecorder parks rejected commands on the dead letter topic with the rejection reason
type DLQFailureRecorder struct {
	dlq    producers.DeadLetterPublisher
	logger *slog.Logger
}

func NewFailureRecorder(dlq producers.DeadLetterPublisher, logger *slog.Logger) service.FailureRecorder {
	return &DLQFailureRecorder{
		dlq:    dlq,
		logger: logger,
	}
}

// RecordFailure publishes cmd to the DLQ. With the DLQ disabled the rejection is only logged.
func (r *DLQFailureRecorder) RecordFailure(ctx context.Context, cmd *command.Command, failureReason string) error {
	logger := r.logger
	if cmd.CorrelationID != "" {
		logger = r.logger.With("correlation_id", cmd.CorrelationID)
	}

	value, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal rejected command %s: %w", cmd.CommandID, err)
	}

	err = r.dlq.PublishToDLQ(ctx, cmd.CommandID.String(), value, failureReason)
	if errors.Is(err, producers.ErrDLQDisabled) {
		logger.Warn("DLQ disabled, rejected command is only logged",
			"command_id", cmd.CommandID.String(), "type", cmd.Type, "reason", failureReason)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to record rejected command %s: %w", cmd.CommandID, err)
	}

	logger.Info("Recorded rejected command", "command_id", cmd.CommandID.String(), "type", cmd.Type, "reason", failureReason)
	return nil
}
