package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/sequence"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// CreateSwap issues the next SWP identifier and moves value between two accounts.
// From and to totals may differ; the difference models a currency exchange.
func (e *Engine) CreateSwap(ctx context.Context, actorID uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error) {
	actorID, err := requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateSwapFields(fields); err != nil {
		return nil, err
	}

	var created *ledger.AccountSwap
	err = e.mutate(ctx, "create swap", actorID, func(s *scope) error {
		n, err := s.repos.Sequences.Next(s.ctx, sequence.NamespaceSwap)
		if err != nil {
			return fmt.Errorf("failed to issue swap id: %w", err)
		}
		swap, err := ledger.NewAccountSwap(sequence.Format(sequence.NamespaceSwap, n), fields, actorID)
		if err != nil {
			return err
		}

		plan := new(ledger.Plan).Apply(swap.Effects()...)
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.Swaps.Create(s.ctx, swap); err != nil {
			return fmt.Errorf("failed to create swap: %w", err)
		}
		created = swap
		return s.record(shared.EntityAccountSwap, swap.ID, shared.OperationCreated, nil, swap, plan)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateSwap reverses both stored sides and applies both revised sides, so an update
// always issues four balance increments.
func (e *Engine) UpdateSwap(ctx context.Context, id uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error) {
	if err := ledger.ValidateSwapFields(fields); err != nil {
		return nil, err
	}

	var updated *ledger.AccountSwap
	err := e.mutate(ctx, "update swap", uuid.Nil, func(s *scope) error {
		current, err := s.repos.Swaps.GetForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load swap: %w", err)
		}
		revised, err := current.Revise(fields)
		if err != nil {
			return err
		}

		plan := new(ledger.Plan).Reverse(current.Effects()...).Apply(revised.Effects()...)
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.Swaps.Update(s.ctx, revised); err != nil {
			return fmt.Errorf("failed to update swap: %w", err)
		}
		updated = revised
		return s.record(shared.EntityAccountSwap, id, shared.OperationUpdated, current, revised, plan)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSwap reverses both sides and removes the swap. Its SWP identifier is not reissued.
func (e *Engine) DeleteSwap(ctx context.Context, id uuid.UUID) error {
	return e.mutate(ctx, "delete swap", uuid.Nil, func(s *scope) error {
		current, err := s.repos.Swaps.GetForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load swap: %w", err)
		}

		plan := new(ledger.Plan).Reverse(current.Effects()...)
		if err := s.apply(plan); err != nil {
			return err
		}
		if err := s.repos.Swaps.Delete(s.ctx, id); err != nil {
			return fmt.Errorf("failed to delete swap: %w", err)
		}
		return s.record(shared.EntityAccountSwap, id, shared.OperationDeleted, current, nil, plan)
	})
}

func (e *Engine) GetSwap(ctx context.Context, id uuid.UUID) (*ledger.AccountSwap, error) {
	swap, err := e.repos.Swaps.GetByID(ctx, id)
	if err != nil {
		return nil, e.fail(ctx, "get swap", err)
	}
	return swap, nil
}
