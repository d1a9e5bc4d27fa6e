package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// TransactionRepository manages Transaction persistence
type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// GetForUpdate reads the row under a row lock so that concurrent updates of the same
	// entry serialize on its stored effect.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx pgx.Tx) TransactionRepository
}

// BankTransactionRepository manages BankTransaction persistence
type BankTransactionRepository interface {
	Create(ctx context.Context, bt *BankTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*BankTransaction, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*BankTransaction, error)
	Update(ctx context.Context, bt *BankTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx pgx.Tx) BankTransactionRepository
}

// SwapRepository manages AccountSwap persistence
type SwapRepository interface {
	Create(ctx context.Context, s *AccountSwap) error
	GetByID(ctx context.Context, id uuid.UUID) (*AccountSwap, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*AccountSwap, error)
	Update(ctx context.Context, s *AccountSwap) error
	Delete(ctx context.Context, id uuid.UUID) error
	// LatestSwapID returns the most recently created swap ID, or "" when none exist
	LatestSwapID(ctx context.Context) (string, error)
	WithTx(tx pgx.Tx) SwapRepository
}

// ErrEntryNotFound indicates a missing ledger entry of the given kind
type ErrEntryNotFound struct {
	Entity shared.EntityType
	ID     uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return string(e.Entity) + " not found: " + e.ID.String()
}

// Is matches shared.ErrNotFound, and any ErrEntryNotFound whose non-zero fields agree
func (e ErrEntryNotFound) Is(target error) bool {
	if target == shared.ErrNotFound {
		return true
	}
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.Entity != "" && t.Entity != e.Entity {
		return false
	}
	return t.ID == uuid.Nil || t.ID == e.ID
}

// ErrDuplicateSwapID indicates a swap ID uniqueness violation
type ErrDuplicateSwapID struct {
	SwapID string
}

func (e ErrDuplicateSwapID) Error() string {
	return "duplicate swap id: " + e.SwapID
}

func (e ErrDuplicateSwapID) Is(target error) bool {
	return target == shared.ErrConflict
}
