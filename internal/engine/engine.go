// Package engine is the only writer of account balances and stock aggregates.
// Each mutation validates its input first, then performs every read and write inside
// one database transaction, together with the audit event describing it.
package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/outbox"
	"github.com/retail-ledger-engine/internal/domain/sequence"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/domain/stock"
	"github.com/retail-ledger-engine/internal/logger"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

// Repositories bundles the stores the engine reads and mutates
type Repositories struct {
	Accounts         account.Repository
	BankAccounts     account.BankAccountRepository
	Transactions     ledger.TransactionRepository
	BankTransactions ledger.BankTransactionRepository
	Swaps            ledger.SwapRepository
	Stock            stock.Repository
	Sequences        sequence.Repository
	Outbox           outbox.Repository
}

func (r Repositories) withTx(tx pgx.Tx) Repositories {
	return Repositories{
		Accounts:         r.Accounts.WithTx(tx),
		BankAccounts:     r.BankAccounts.WithTx(tx),
		Transactions:     r.Transactions.WithTx(tx),
		BankTransactions: r.BankTransactions.WithTx(tx),
		Swaps:            r.Swaps.WithTx(tx),
		Stock:            r.Stock.WithTx(tx),
		Sequences:        r.Sequences.WithTx(tx),
		Outbox:           r.Outbox.WithTx(tx),
	}
}

// Engine is safe for concurrent use. Concurrent mutations serialize on database row locks.
type Engine struct {
	db     persistence.TxRunner
	repos  Repositories
	logger *slog.Logger
}

func New(logger *slog.Logger, db persistence.TxRunner, repos Repositories) *Engine {
	return &Engine{
		db:     db,
		repos:  repos,
		logger: logger,
	}
}

// mutate runs fn in one atomic scope with every repository bound to the scope's
// transaction. actorID falls back to the actor carried on ctx. When ctx carries a
// command ID that already committed, fn is not run and outbox.ErrDuplicateMessage is returned.
func (e *Engine) mutate(ctx context.Context, op string, actorID uuid.UUID, fn func(s *scope) error) error {
	if actorID == uuid.Nil {
		actorID, _ = shared.ActorFromContext(ctx)
	}
	log := logger.FromContext(ctx, e.logger).With("operation", op)

	commandID, _ := shared.CommandIDFromContext(ctx)
	if commandID != uuid.Nil {
		log = log.With("command_id", commandID.String())
	}

	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		s := &scope{
			ctx:       ctx,
			repos:     e.repos.withTx(tx),
			actorID:   actorID,
			commandID: commandID,
			logger:    log,
		}
		if err := s.claimCommand(); err != nil {
			return err
		}
		return fn(s)
	})
	if err != nil {
		return e.fail(ctx, op, err)
	}
	log.Debug("Ledger mutation committed")
	return nil
}

// fail logs err by kind and returns it classified. Unclassified errors become shared.ErrInternal.
func (e *Engine) fail(ctx context.Context, op string, err error) error {
	log := logger.FromContext(ctx, e.logger)
	kind := shared.KindOf(err)
	if kind == shared.KindInternal {
		log.Error("Ledger operation failed", "operation", op, "error", err)
	} else {
		log.Warn("Ledger operation rejected", "operation", op, "kind", string(kind), "error", err)
	}
	return shared.Internal(op, err)
}

// requireActor resolves the actor a new entry is attributed to
func requireActor(ctx context.Context, actorID uuid.UUID) (uuid.UUID, error) {
	if actorID != uuid.Nil {
		return actorID, nil
	}
	if fromCtx, ok := shared.ActorFromContext(ctx); ok {
		return fromCtx, nil
	}
	return uuid.Nil, shared.Invalid("actor_id", "is required")
}
