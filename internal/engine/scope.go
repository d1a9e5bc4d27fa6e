package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/audit"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/outbox"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// scope is one open mutation. Its repositories share the mutation's transaction.
type scope struct {
	ctx       context.Context
	repos     Repositories
	actorID   uuid.UUID
	commandID uuid.UUID
	logger    *slog.Logger
}

// claimCommand fails when the scope's command already wrote its audit event. A concurrent
// redelivery that passes this check still loses on the outbox event_id unique key.
func (s *scope) claimCommand() error {
	if s.commandID == uuid.Nil {
		return nil
	}
	_, err := s.repos.Outbox.GetByEventID(s.ctx, s.commandID)
	switch {
	case err == nil:
		return outbox.ErrDuplicateMessage{EventID: s.commandID}
	case errors.Is(err, shared.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to look up command %s in the outbox: %w", s.commandID, err)
	}
}

// apply issues every step of plan as an atomic balance increment, in account-ID order
func (s *scope) apply(plan *ledger.Plan) error {
	steps := plan.Steps()
	for _, step := range steps {
		if err := s.repos.Accounts.AdjustBalances(s.ctx, step.AccountID, step.Delta); err != nil {
			return fmt.Errorf("failed to adjust balances of account %s: %w", step.AccountID, err)
		}
		s.logger.Debug("Account balances adjusted",
			"account_id", step.AccountID.String(),
			"cash_delta", step.Delta.Cash,
			"digital_delta", step.Delta.Digital,
		)
	}
	for _, net := range plan.Net() {
		s.logger.Info("Ledger plan applied",
			"account_id", net.AccountID.String(),
			"steps", len(steps),
			"net_cash", net.Delta.Cash,
			"net_digital", net.Delta.Digital,
		)
	}
	return nil
}

// record writes the audit event of this mutation to the outbox. plan may be nil.
// A mutation records at most one event.
func (s *scope) record(entityType shared.EntityType, entityID uuid.UUID, op shared.Operation, before, after any, plan *ledger.Plan) error {
	var adjustments []ledger.Adjustment
	if plan != nil {
		adjustments = plan.Steps()
	}

	event, err := audit.NewEvent(entityType, entityID, op, before, after, adjustments)
	if err != nil {
		return err
	}
	if s.commandID != uuid.Nil {
		event.EventID = s.commandID
	}
	event.ActorID = s.actorID
	event.CorrelationID = shared.CorrelationIDFromContext(s.ctx)

	message, err := outbox.NewMessage(event)
	if err != nil {
		return fmt.Errorf("failed to create outbox message payload for %s %s: %w", entityType, entityID, err)
	}
	if err := s.repos.Outbox.Create(s.ctx, message); err != nil {
		return fmt.Errorf("failed to create outbox message for %s %s: %w", entityType, entityID, err)
	}
	s.logger.Debug("Audit event queued",
		"event_id", event.EventID.String(),
		"entity_type", string(entityType),
		"entity_id", entityID.String(),
	)
	return nil
}
