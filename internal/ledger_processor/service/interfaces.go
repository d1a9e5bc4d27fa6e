package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/engine"
)

// ProcessingService runs one ledger command. A nil return acknowledges the message.
type ProcessingService interface {
	ProcessCommand(ctx context.Context, cmd *command.Command) error
}

// Outcome is what an already-handled command resolved to
type Outcome string

const (
	OutcomeApplied  Outcome = "APPLIED"
	OutcomeRejected Outcome = "REJECTED"
)

// IdempotencyStore remembers which command IDs have been handled
type IdempotencyStore interface {
	// Outcome returns the stored outcome and false when the command has not been handled yet
	Outcome(ctx context.Context, commandID uuid.UUID) (Outcome, bool, error)
	MarkProcessed(ctx context.Context, commandID uuid.UUID, outcome Outcome) error
}

// FailureRecorder keeps commands the engine rejected for later inspection
type FailureRecorder interface {
	RecordFailure(ctx context.Context, cmd *command.Command, failureReason string) error
}

// LedgerEngine is the subset of the mutation engine commands are dispatched to
type LedgerEngine interface {
	CreateTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	CreateBankTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error)
	UpdateBankTransaction(ctx context.Context, id uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error)
	DeleteBankTransaction(ctx context.Context, id uuid.UUID) error
	CreateSwap(ctx context.Context, actorID uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error)
	UpdateSwap(ctx context.Context, id uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error)
	DeleteSwap(ctx context.Context, id uuid.UUID) error
	CreateStockMovement(ctx context.Context, actorID, productID, variantID, skuID uuid.UUID, quantity int64) (*engine.StockLevel, error)
	UpdateStockMovement(ctx context.Context, id uuid.UUID, quantity int64) (*engine.StockLevel, error)
	DeleteStockMovement(ctx context.Context, id uuid.UUID) error
	CreateAccount(ctx context.Context, name string, isDefault bool) (*account.Account, error)
	SetDefaultAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	CreateBankAccount(ctx context.Context, actorID uuid.UUID, holderName string) (*account.BankAccount, error)
	SyncSequences(ctx context.Context) error
}
