package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/outbox"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/logger"
)

type ProcessingServiceImpl struct {
	engine          LedgerEngine
	idempotency     IdempotencyStore
	failureRecorder FailureRecorder
	logger          *slog.Logger
}

func NewProcessingService(
	engine LedgerEngine,
	idempotency IdempotencyStore,
	failureRecorder FailureRecorder,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		engine:          engine,
		idempotency:     idempotency,
		failureRecorder: failureRecorder,
		logger:          logger,
	}
}

// ProcessCommand applies cmd once. Rejections (invalid argument, not found, conflict) are
// recorded and acknowledged; internal failures are returned so the message is redelivered.
// A command whose mutation already committed is acknowledged as applied.
func (s *ProcessingServiceImpl) ProcessCommand(ctx context.Context, cmd *command.Command) error {
	ctx = shared.WithActor(ctx, cmd.ActorID)
	ctx = shared.WithCommandID(ctx, cmd.CommandID)
	if cmd.CorrelationID != "" {
		ctx = shared.WithCorrelationID(ctx, cmd.CorrelationID)
	}
	log := logger.FromContext(ctx, s.logger).With("command_id", cmd.CommandID.String(), "type", cmd.Type)

	outcome, done, err := s.idempotency.Outcome(ctx, cmd.CommandID)
	if err != nil {
		log.Error("Failed to check command idempotency", "error", err)
		return fmt.Errorf("idempotency check failed for command %s: %w", cmd.CommandID, err)
	}
	if done {
		log.Info("Command already processed (idempotency)", "outcome", outcome)
		return nil
	}

	log.Info("Processing command")

	outcome = OutcomeApplied
	err = s.dispatch(ctx, cmd)
	switch {
	case err == nil:
	case isReplay(err, cmd):
		log.Info("Command already applied (ledger)")
	default:
		kind := shared.KindOf(err)
		if kind == shared.KindInternal {
			log.Error("Failed to process command", "error", err)
			return fmt.Errorf("processing command %s failed: %w", cmd.CommandID, err)
		}

		log.Warn("Command rejected", "kind", kind, "reason", err.Error())
		if recordErr := s.failureRecorder.RecordFailure(ctx, cmd, err.Error()); recordErr != nil {
			log.Error("Failed to record rejected command", "error", recordErr)
			return fmt.Errorf("failed to record rejection of command %s: %w", cmd.CommandID, recordErr)
		}
		outcome = OutcomeRejected
	}

	// A redelivery that misses the mark is still refused by the ledger
	if err := s.idempotency.MarkProcessed(ctx, cmd.CommandID, outcome); err != nil {
		log.Error("Failed to mark command as processed", "outcome", outcome, "error", err)
	}

	log.Info("Command processed", "outcome", outcome)
	return nil
}

// isReplay reports whether err is the ledger refusing cmd because its audit event,
// keyed by the command ID, is already stored
func isReplay(err error, cmd *command.Command) bool {
	var dup outbox.ErrDuplicateMessage
	return errors.As(err, &dup) && dup.EventID == cmd.CommandID
}

func (s *ProcessingServiceImpl) dispatch(ctx context.Context, cmd *command.Command) error {
	switch cmd.Type {
	case command.TypeCreateTransaction:
		return withFields(cmd, command.TransactionPayload.Fields, func(f ledger.TransactionFields) error {
			_, err := s.engine.CreateTransaction(ctx, cmd.ActorID, f)
			return err
		})
	case command.TypeUpdateTransaction:
		return withRevision(cmd, command.TransactionPayload.Fields, func(r revision[ledger.TransactionFields]) error {
			_, err := s.engine.UpdateTransaction(ctx, r.id, r.fields)
			return err
		})
	case command.TypeDeleteTransaction:
		return withRef(cmd, func(r *command.Ref) error { return s.engine.DeleteTransaction(ctx, r.ID) })

	case command.TypeCreateBankTransaction:
		return withFields(cmd, command.BankTransactionPayload.Fields, func(f ledger.BankTransactionFields) error {
			_, err := s.engine.CreateBankTransaction(ctx, cmd.ActorID, f)
			return err
		})
	case command.TypeUpdateBankTransaction:
		return withRevision(cmd, command.BankTransactionPayload.Fields, func(r revision[ledger.BankTransactionFields]) error {
			_, err := s.engine.UpdateBankTransaction(ctx, r.id, r.fields)
			return err
		})
	case command.TypeDeleteBankTransaction:
		return withRef(cmd, func(r *command.Ref) error { return s.engine.DeleteBankTransaction(ctx, r.ID) })

	case command.TypeCreateSwap:
		return withFields(cmd, command.SwapPayload.Fields, func(f ledger.SwapFields) error {
			_, err := s.engine.CreateSwap(ctx, cmd.ActorID, f)
			return err
		})
	case command.TypeUpdateSwap:
		return withRevision(cmd, command.SwapPayload.Fields, func(r revision[ledger.SwapFields]) error {
			_, err := s.engine.UpdateSwap(ctx, r.id, r.fields)
			return err
		})
	case command.TypeDeleteSwap:
		return withRef(cmd, func(r *command.Ref) error { return s.engine.DeleteSwap(ctx, r.ID) })

	case command.TypeCreateStockMovement:
		p, err := command.DecodePayload[command.StockMovementPayload](cmd)
		if err != nil {
			return err
		}
		_, err = s.engine.CreateStockMovement(ctx, cmd.ActorID, p.ProductID, p.VariantID, p.SKUID, p.Quantity)
		return err
	case command.TypeUpdateStockMovement:
		p, err := command.DecodePayload[command.Revision[command.StockQuantityPayload]](cmd)
		if err != nil {
			return err
		}
		_, err = s.engine.UpdateStockMovement(ctx, p.ID, p.Entry.Quantity)
		return err
	case command.TypeDeleteStockMovement:
		return withRef(cmd, func(r *command.Ref) error { return s.engine.DeleteStockMovement(ctx, r.ID) })

	case command.TypeCreateAccount:
		p, err := command.DecodePayload[command.AccountPayload](cmd)
		if err != nil {
			return err
		}
		_, err = s.engine.CreateAccount(ctx, p.Name, p.IsDefault)
		return err
	case command.TypeSetDefaultAccount:
		return withRef(cmd, func(r *command.Ref) error {
			_, err := s.engine.SetDefaultAccount(ctx, r.ID)
			return err
		})
	case command.TypeCreateBankAccount:
		p, err := command.DecodePayload[command.BankAccountPayload](cmd)
		if err != nil {
			return err
		}
		_, err = s.engine.CreateBankAccount(ctx, cmd.ActorID, p.HolderName)
		return err
	case command.TypeSyncSequences:
		return s.engine.SyncSequences(ctx)
	}
	return shared.Invalid("type", "unknown command type %q", cmd.Type)
}
