package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/audit"
	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/sequence"
	"github.com/retail-ledger-engine/internal/engine"
)

// AccountService manages accounts and bank accounts. *engine.Engine implements it.
type AccountService interface {
	// CreateAccount returns ErrDuplicateName if an account with the same name exists
	CreateAccount(ctx context.Context, name string, isDefault bool) (*account.Account, error)
	SetDefaultAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	ListAccounts(ctx context.Context) ([]*account.Account, error)
	CreateBankAccount(ctx context.Context, actorID uuid.UUID, holderName string) (*account.BankAccount, error)
	GetBankAccount(ctx context.Context, id uuid.UUID) (*account.BankAccount, error)
}

// LedgerService applies ledger entries synchronously. *engine.Engine implements it.
type LedgerService interface {
	CreateTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)

	CreateBankTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error)
	UpdateBankTransaction(ctx context.Context, id uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error)
	DeleteBankTransaction(ctx context.Context, id uuid.UUID) error
	GetBankTransaction(ctx context.Context, id uuid.UUID) (*ledger.BankTransaction, error)

	CreateSwap(ctx context.Context, actorID uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error)
	UpdateSwap(ctx context.Context, id uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error)
	DeleteSwap(ctx context.Context, id uuid.UUID) error
	GetSwap(ctx context.Context, id uuid.UUID) (*ledger.AccountSwap, error)
}

// StockService records stock movements. *engine.Engine implements it.
type StockService interface {
	CreateStockMovement(ctx context.Context, actorID, productID, variantID, skuID uuid.UUID, quantity int64) (*engine.StockLevel, error)
	UpdateStockMovement(ctx context.Context, id uuid.UUID, quantity int64) (*engine.StockLevel, error)
	DeleteStockMovement(ctx context.Context, id uuid.UUID) error
}

// SequenceService issues human-readable identifiers. *engine.Engine implements it.
type SequenceService interface {
	NextIdentifier(ctx context.Context, ns sequence.Namespace) (string, error)
	SyncSequences(ctx context.Context) error
}

// AuditService reads the mutation history
type AuditService interface {
	// ListEntityEvents returns a page of an entity's events, newest first, and the total count
	ListEntityEvents(ctx context.Context, entityType string, entityID uuid.UUID, page, perPage int) ([]*audit.Event, int64, error)
	// CommandEvent returns the event an applied command wrote. Its event ID is the command ID,
	// and it is only found once the outbox has delivered it.
	CommandEvent(ctx context.Context, commandID uuid.UUID) (*audit.Event, error)
}

// CommandService queues mutations for the ledger processor
type CommandService interface {
	Submit(ctx context.Context, commandType command.Type, payload json.RawMessage) (*command.Command, error)
}
