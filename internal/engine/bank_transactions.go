package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// CreateBankTransaction records an entry against a bank account and mirrors it on the
// linked account, splitting the effect across cash and digital.
func (e *Engine) CreateBankTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error) {
	actorID, err := requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	bt, err := ledger.NewBankTransaction(fields, actorID)
	if err != nil {
		return nil, err
	}

	err = e.mutate(ctx, "create bank transaction", actorID, func(s *scope) error {
		if err := s.repos.BankAccounts.Lock(s.ctx, bt.BankAccountID); err != nil {
			return fmt.Errorf("failed to lock bank account: %w", err)
		}
		plan := new(ledger.Plan).Apply(bt.Effect())
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.BankTransactions.Create(s.ctx, bt); err != nil {
			return fmt.Errorf("failed to create bank transaction: %w", err)
		}
		return s.record(shared.EntityBankTransaction, bt.ID, shared.OperationCreated, nil, bt, plan)
	})
	if err != nil {
		return nil, err
	}
	return bt, nil
}

// UpdateBankTransaction reverses the stored split and applies the revised one
func (e *Engine) UpdateBankTransaction(ctx context.Context, id uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error) {
	if err := ledger.ValidateBankTransactionFields(fields); err != nil {
		return nil, err
	}

	var updated *ledger.BankTransaction
	err := e.mutate(ctx, "update bank transaction", uuid.Nil, func(s *scope) error {
		current, err := s.repos.BankTransactions.GetForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load bank transaction: %w", err)
		}
		revised, err := current.Revise(fields)
		if err != nil {
			return err
		}
		if err := s.repos.BankAccounts.Lock(s.ctx, revised.BankAccountID); err != nil {
			return fmt.Errorf("failed to lock bank account: %w", err)
		}

		plan := new(ledger.Plan).Reverse(current.Effect()).Apply(revised.Effect())
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.BankTransactions.Update(s.ctx, revised); err != nil {
			return fmt.Errorf("failed to update bank transaction: %w", err)
		}
		updated = revised
		return s.record(shared.EntityBankTransaction, id, shared.OperationUpdated, current, revised, plan)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBankTransaction reverses the stored split and removes the entry
func (e *Engine) DeleteBankTransaction(ctx context.Context, id uuid.UUID) error {
	return e.mutate(ctx, "delete bank transaction", uuid.Nil, func(s *scope) error {
		current, err := s.repos.BankTransactions.GetForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load bank transaction: %w", err)
		}

		plan := new(ledger.Plan).Reverse(current.Effect())
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.BankTransactions.Delete(s.ctx, id); err != nil {
			return fmt.Errorf("failed to delete bank transaction: %w", err)
		}
		return s.record(shared.EntityBankTransaction, id, shared.OperationDeleted, current, nil, plan)
	})
}

func (e *Engine) GetBankTransaction(ctx context.Context, id uuid.UUID) (*ledger.BankTransaction, error) {
	bt, err := e.repos.BankTransactions.GetByID(ctx, id)
	if err != nil {
		return nil, e.fail(ctx, "get bank transaction", err)
	}
	return bt, nil
}
