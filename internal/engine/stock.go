package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/domain/stock"
)

// StockLevel is a movement together with the aggregates recomputed after it changed
type StockLevel struct {
	Movement     *stock.Movement `json:"movement"`
	SKUStock     int64           `json:"sku_stock_quantity"`
	ProductStock int64           `json:"product_stock_quantity"`
}

// CreateStockMovement records a quantity for a SKU of the given product variant and
// recomputes the SKU and product aggregates.
func (e *Engine) CreateStockMovement(ctx context.Context, actorID, productID, variantID, skuID uuid.UUID, quantity int64) (*StockLevel, error) {
	actorID, err := requireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	m, err := stock.NewMovement(productID, variantID, skuID, quantity, actorID)
	if err != nil {
		return nil, err
	}

	var level *StockLevel
	err = e.mutate(ctx, "create stock movement", actorID, func(s *scope) error {
		sku, err := s.repos.Stock.GetSKUForUpdate(s.ctx, skuID)
		if err != nil {
			return fmt.Errorf("failed to lock sku: %w", err)
		}
		if !sku.BelongsTo(productID, variantID) {
			return stock.ErrSKUMismatch{SKUID: skuID, ProductID: productID, VariantID: variantID}
		}
		if _, err := s.repos.Stock.GetProductForUpdate(s.ctx, productID); err != nil {
			return fmt.Errorf("failed to lock product: %w", err)
		}
		if err := s.repos.Stock.CreateMovement(s.ctx, m); err != nil {
			return fmt.Errorf("failed to create stock movement: %w", err)
		}
		if level, err = s.recompute(m); err != nil {
			return err
		}
		return s.record(shared.EntityStockMovement, m.ID, shared.OperationCreated, nil, level, nil)
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

// UpdateStockMovement replaces a movement's quantity and recomputes the aggregates
func (e *Engine) UpdateStockMovement(ctx context.Context, id uuid.UUID, quantity int64) (*StockLevel, error) {
	if err := stock.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	var level *StockLevel
	err := e.mutate(ctx, "update stock movement", uuid.Nil, func(s *scope) error {
		current, err := s.repos.Stock.GetMovementForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load stock movement: %w", err)
		}
		if err := s.lockAggregates(current); err != nil {
			return err
		}
		if err := s.repos.Stock.UpdateMovementQuantity(s.ctx, id, quantity); err != nil {
			return fmt.Errorf("failed to update stock movement: %w", err)
		}

		revised := *current
		revised.Quantity = quantity
		if level, err = s.recompute(&revised); err != nil {
			return err
		}
		return s.record(shared.EntityStockMovement, id, shared.OperationUpdated, current, level, nil)
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

// DeleteStockMovement removes a movement and recomputes the aggregates
func (e *Engine) DeleteStockMovement(ctx context.Context, id uuid.UUID) error {
	return e.mutate(ctx, "delete stock movement", uuid.Nil, func(s *scope) error {
		current, err := s.repos.Stock.GetMovementForUpdate(s.ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load stock movement: %w", err)
		}
		if err := s.lockAggregates(current); err != nil {
			return err
		}
		if err := s.repos.Stock.DeleteMovement(s.ctx, id); err != nil {
			return fmt.Errorf("failed to delete stock movement: %w", err)
		}
		if _, err := s.recompute(current); err != nil {
			return err
		}
		return s.record(shared.EntityStockMovement, id, shared.OperationDeleted, current, nil, nil)
	})
}

// lockAggregates locks the SKU and product rows m counts towards, in that order
func (s *scope) lockAggregates(m *stock.Movement) error {
	if _, err := s.repos.Stock.GetSKUForUpdate(s.ctx, m.SKUID); err != nil {
		return fmt.Errorf("failed to lock sku: %w", err)
	}
	if _, err := s.repos.Stock.GetProductForUpdate(s.ctx, m.ProductID); err != nil {
		return fmt.Errorf("failed to lock product: %w", err)
	}
	return nil
}

// recompute sets the SKU and product aggregates of m to the sum of their movements
func (s *scope) recompute(m *stock.Movement) (*StockLevel, error) {
	skuStock, err := s.repos.Stock.RecomputeSKU(s.ctx, m.SKUID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute sku stock: %w", err)
	}
	productStock, err := s.repos.Stock.RecomputeProduct(s.ctx, m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute product stock: %w", err)
	}
	s.logger.Debug("Stock aggregates recomputed",
		"sku_id", m.SKUID.String(),
		"sku_stock", skuStock,
		"product_id", m.ProductID.String(),
		"product_stock", productStock,
	)
	return &StockLevel{Movement: m, SKUStock: skuStock, ProductStock: productStock}, nil
}
