package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// CreateTransaction records a single-account entry and applies its effect
func (e *Engine) CreateTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error) {
	actorID, err := requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	t, err := ledger.NewTransaction(fields, actorID)
	if err != nil {
		return nil, err
	}

	err = e.mutate(ctx, "create transaction", actorID, func(s *scope) error {
		plan := new(ledger.Plan).Apply(t.Effect())
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.Transactions.Create(s.ctx, t); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return s.record(shared.EntityTransaction, t.ID, shared.OperationCreated, nil, t, plan)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTransaction reverses the stored effect and applies the revised one. Both steps
// always run, including when the account is unchanged.
func (e *Engine) UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error) {
	if err := ledger.ValidateTransactionFields(fields); err != nil {
		return nil, err
	}

	var updated *ledger.Transaction
	err := e.mutate(ctx, "update transaction", uuid.Nil, func(s *scope) error {
		current, err := s.repos.Transactions.GetForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}
		revised, err := current.Revise(fields)
		if err != nil {
			return err
		}

		plan := new(ledger.Plan).Reverse(current.Effect()).Apply(revised.Effect())
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.Transactions.Update(s.ctx, revised); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		updated = revised
		return s.record(shared.EntityTransaction, id, shared.OperationUpdated, current, revised, plan)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction reverses the stored effect and removes the entry
func (e *Engine) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return e.mutate(ctx, "delete transaction", uuid.Nil, func(s *scope) error {
		current, err := s.repos.Transactions.GetForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}

		plan := new(ledger.Plan).Reverse(current.Effect())
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.Transactions.Delete(s.ctx, id); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return s.record(shared.EntityTransaction, id, shared.OperationDeleted, current, nil, plan)
	})
}

// GetTransaction reads a transaction outside any mutation
func (e *Engine) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	t, err := e.repos.Transactions.GetByID(ctx, id)
	if err != nil {
		return nil, e.fail(ctx, "get transaction", err)
	}
	return t, nil
}
