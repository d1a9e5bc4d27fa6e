package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByName(ctx context.Context, name string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)

	// AdjustBalances atomically increments the cash and digital sub-balances by delta.
	// Returns ErrAccountNotFound when no row matched.
	AdjustBalances(ctx context.Context, id uuid.UUID, delta shared.BalanceDelta) error

	// ClearDefault unsets the default flag on every account
	ClearDefault(ctx context.Context) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	WithTx(tx pgx.Tx) Repository
}

// BankAccountRepository defines bank account persistence operations
type BankAccountRepository interface {
	Create(ctx context.Context, bankAccount *BankAccount) error
	// GetByID returns the bank account with balances summed from its transactions
	GetByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	// Lock takes a row lock on the bank account, failing with ErrBankAccountNotFound
	Lock(ctx context.Context, id uuid.UUID) error
	// LatestAccountNumber returns the most recently created account number, or "" when none exist
	LatestAccountNumber(ctx context.Context) (string, error)
	WithTx(tx pgx.Tx) BankAccountRepository
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// Is matches shared.ErrNotFound and any ErrAccountNotFound with the same (or nil) ID
func (e ErrAccountNotFound) Is(target error) bool {
	if target == shared.ErrNotFound {
		return true
	}
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	return t.AccountID == uuid.Nil || t.AccountID == e.AccountID
}

// ErrDuplicateName indicates account name uniqueness violation
type ErrDuplicateName struct {
	Name string
}

func (e ErrDuplicateName) Error() string {
	return "account with name already exists: " + e.Name
}

func (e ErrDuplicateName) Is(target error) bool {
	return target == shared.ErrConflict
}

// ErrBankAccountNotFound indicates missing bank account
type ErrBankAccountNotFound struct {
	BankAccountID uuid.UUID
}

func (e ErrBankAccountNotFound) Error() string {
	return "bank account not found: " + e.BankAccountID.String()
}

func (e ErrBankAccountNotFound) Is(target error) bool {
	if target == shared.ErrNotFound {
		return true
	}
	t, ok := target.(ErrBankAccountNotFound)
	if !ok {
		return false
	}
	return t.BankAccountID == uuid.Nil || t.BankAccountID == e.BankAccountID
}

// ErrDuplicateAccountNumber indicates a bank account number uniqueness violation
type ErrDuplicateAccountNumber struct {
	AccountNumber string
}

func (e ErrDuplicateAccountNumber) Error() string {
	return "bank account number already exists: " + e.AccountNumber
}

func (e ErrDuplicateAccountNumber) Is(target error) bool {
	return target == shared.ErrConflict
}
