package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/platform/messaging/producers"
)

// CommandServiceImpl implements the CommandService interface
type CommandServiceImpl struct {
	producer producers.MessagePublisher
	logger   *slog.Logger
}

func NewCommandService(logger *slog.Logger, producer producers.MessagePublisher) CommandService {
	return &CommandServiceImpl{
		producer: producer,
		logger:   logger,
	}
}

// Submit wraps payload in a command issued by the request's actor and publishes it.
// Commands are keyed by actor so one actor's commands are applied in submission order.
func (s *CommandServiceImpl) Submit(ctx context.Context, commandType command.Type, payload json.RawMessage) (*command.Command, error) {
	actorID, ok := shared.ActorFromContext(ctx)
	if !ok {
		return nil, shared.Invalid("actor_id", "is required")
	}

	var body any
	if len(payload) > 0 {
		body = payload
	}
	cmd, err := command.New(commandType, actorID, shared.CorrelationIDFromContext(ctx), body)
	if err != nil {
		return nil, err
	}

	if err := s.producer.Publish(ctx, actorID.String(), cmd); err != nil {
		s.logger.Error("Failed to publish ledger command",
			"command_id", cmd.CommandID.String(),
			"type", cmd.Type,
			"error", err,
		)
		return nil, shared.Internal("submit command", fmt.Errorf("failed to publish command %s: %w", cmd.CommandID, err))
	}

	s.logger.Info("Ledger command published",
		"command_id", cmd.CommandID.String(),
		"type", cmd.Type,
		"actor_id", actorID.String(),
	)
	return cmd, nil
}
