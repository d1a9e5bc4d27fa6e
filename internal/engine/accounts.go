package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/sequence"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// CreateAccount opens an empty account. A default account replaces the previous default.
func (e *Engine) CreateAccount(ctx context.Context, name string, isDefault bool) (*account.Account, error) {
	acc, err := account.NewAccount(name, isDefault)
	if err != nil {
		return nil, err
	}

	err = e.mutate(ctx, "create account", uuid.Nil, func(s *scope) error {
		existing, err := s.repos.Accounts.GetByName(s.ctx, acc.Name)
		if err != nil {
			return fmt.Errorf("failed to look up account name: %w", err)
		}
		if existing != nil {
			return account.ErrDuplicateName{Name: acc.Name}
		}
		if isDefault {
			if err := s.repos.Accounts.ClearDefault(s.ctx); err != nil {
				return fmt.Errorf("failed to clear default account: %w", err)
			}
		}
		if err := s.repos.Accounts.Create(s.ctx, acc); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return s.record(shared.EntityAccount, acc.ID, shared.OperationCreated, nil, acc, nil)
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// SetDefaultAccount makes id the only default account
func (e *Engine) SetDefaultAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var updated *account.Account
	err := e.mutate(ctx, "set default account", uuid.Nil, func(s *scope) error {
		current, err := s.repos.Accounts.GetByID(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}
		if err := s.repos.Accounts.ClearDefault(s.ctx); err != nil {
			return fmt.Errorf("failed to clear default account: %w", err)
		}
		if err := s.repos.Accounts.SetDefault(s.ctx, id); err != nil {
			return fmt.Errorf("failed to set default account: %w", err)
		}

		revised := *current
		revised.IsDefault = true
		updated = &revised
		return s.record(shared.EntityAccount, id, shared.OperationUpdated, current, updated, nil)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CreateBankAccount issues the next ACC number to a new bank account
func (e *Engine) CreateBankAccount(ctx context.Context, actorID uuid.UUID, holderName string) (*account.BankAccount, error) {
	actorID, err := requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(holderName) == "" {
		return nil, shared.Invalid("name", "holder name cannot be empty")
	}

	var created *account.BankAccount
	err = e.mutate(ctx, "create bank account", actorID, func(s *scope) error {
		n, err := s.repos.Sequences.Next(s.ctx, sequence.NamespaceBankAccount)
		if err != nil {
			return fmt.Errorf("failed to issue account number: %w", err)
		}
		ba, err := account.NewBankAccount(sequence.Format(sequence.NamespaceBankAccount, n), holderName, actorID)
		if err != nil {
			return err
		}
		if err := s.repos.BankAccounts.Create(s.ctx, ba); err != nil {
			return fmt.Errorf("failed to create bank account: %w", err)
		}
		created = ba
		return s.record(shared.EntityBankAccount, ba.ID, shared.OperationCreated, nil, ba, nil)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (e *Engine) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	acc, err := e.repos.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, e.fail(ctx, "get account", err)
	}
	return acc, nil
}

func (e *Engine) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	accounts, err := e.repos.Accounts.List(ctx)
	if err != nil {
		return nil, e.fail(ctx, "list accounts", err)
	}
	return accounts, nil
}

// GetBankAccount returns the bank account with balances derived from its transactions
func (e *Engine) GetBankAccount(ctx context.Context, id uuid.UUID) (*account.BankAccount, error) {
	ba, err := e.repos.BankAccounts.GetByID(ctx, id)
	if err != nil {
		return nil, e.fail(ctx, "get bank account", err)
	}
	return ba, nil
}
