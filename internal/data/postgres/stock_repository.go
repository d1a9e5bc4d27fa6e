package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/stock"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

const movementColumns = `id, product_id, variant_id, sku_id, quantity, created_by, created_at, updated_at`

// StockRepository implements the stock.Repository interface for PostgreSQL.
// Aggregates are always recomputed from stock_quantities rather than incremented.
type StockRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewStockRepository(logger *slog.Logger, db *persistence.PostgresDB) stock.Repository {
	return &StockRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *StockRepository) WithTx(tx pgx.Tx) stock.Repository {
	return &StockRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// GetSKUForUpdate retrieves a SKU and locks its row, so the aggregate recomputed later in the
// transaction sees every movement committed before it
func (r *StockRepository) GetSKUForUpdate(ctx context.Context, id uuid.UUID) (*stock.SKU, error) {
	query := `SELECT id, product_id, variant_id, code, stock_quantity FROM skus WHERE id = $1 FOR UPDATE`

	var sku stock.SKU
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&sku.ID,
		&sku.ProductID,
		&sku.VariantID,
		&sku.Code,
		&sku.StockQuantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrSKUNotFound{SKUID: id}
		}
		r.logger.Error("Failed to get sku", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}
	return &sku, nil
}

// GetProductForUpdate retrieves a product and locks its row
func (r *StockRepository) GetProductForUpdate(ctx context.Context, id uuid.UUID) (*stock.Product, error) {
	query := `SELECT id, name, stock_quantity FROM products WHERE id = $1 FOR UPDATE`

	var product stock.Product
	err := r.querier.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &product.StockQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrProductNotFound{ProductID: id}
		}
		r.logger.Error("Failed to get product", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *StockRepository) CreateMovement(ctx context.Context, m *stock.Movement) error {
	query := `
		INSERT INTO stock_quantities (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, query,
		m.ID,
		m.ProductID,
		m.VariantID,
		m.SKUID,
		m.Quantity,
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		switch {
		case persistence.IsForeignKeyViolation(err, "stock_quantities_sku_id_fkey"):
			return stock.ErrSKUNotFound{SKUID: m.SKUID}
		case persistence.IsForeignKeyViolation(err, "stock_quantities_product_id_fkey"):
			return stock.ErrProductNotFound{ProductID: m.ProductID}
		}
		r.logger.Error("Failed to create stock movement", "id", m.ID.String(), "error", err)
		return fmt.Errorf("failed to create stock movement: %w", err)
	}
	return nil
}

// GetMovementForUpdate retrieves a movement and locks its row
func (r *StockRepository) GetMovementForUpdate(ctx context.Context, id uuid.UUID) (*stock.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_quantities WHERE id = $1 FOR UPDATE`

	var m stock.Movement
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.ProductID,
		&m.VariantID,
		&m.SKUID,
		&m.Quantity,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrMovementNotFound{MovementID: id}
		}
		r.logger.Error("Failed to get stock movement", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get stock movement: %w", err)
	}
	return &m, nil
}

func (r *StockRepository) UpdateMovementQuantity(ctx context.Context, id uuid.UUID, quantity int64) error {
	query := `UPDATE stock_quantities SET quantity = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.querier.Exec(ctx, query, quantity, id)
	if err != nil {
		r.logger.Error("Failed to update stock movement", "id", id.String(), "error", err)
		return fmt.Errorf("failed to update stock movement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return stock.ErrMovementNotFound{MovementID: id}
	}
	return nil
}

func (r *StockRepository) DeleteMovement(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM stock_quantities WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete stock movement", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete stock movement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return stock.ErrMovementNotFound{MovementID: id}
	}
	return nil
}

// RecomputeSKU sets skus.stock_quantity to the sum of the SKU's movements
func (r *StockRepository) RecomputeSKU(ctx context.Context, skuID uuid.UUID) (int64, error) {
	query := `
		UPDATE skus
		SET stock_quantity = (SELECT COALESCE(SUM(quantity), 0) FROM stock_quantities WHERE sku_id = $1)
		WHERE id = $1
		RETURNING stock_quantity
	`

	var total int64
	if err := r.querier.QueryRow(ctx, query, skuID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, stock.ErrSKUNotFound{SKUID: skuID}
		}
		r.logger.Error("Failed to recompute sku stock", "sku_id", skuID.String(), "error", err)
		return 0, fmt.Errorf("failed to recompute sku stock: %w", err)
	}
	return total, nil
}

// RecomputeProduct sets products.stock_quantity to the sum of the product's movements
func (r *StockRepository) RecomputeProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	query := `
		UPDATE products
		SET stock_quantity = (SELECT COALESCE(SUM(quantity), 0) FROM stock_quantities WHERE product_id = $1)
		WHERE id = $1
		RETURNING stock_quantity
	`

	var total int64
	if err := r.querier.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, stock.ErrProductNotFound{ProductID: productID}
		}
		r.logger.Error("Failed to recompute product stock", "product_id", productID.String(), "error", err)
		return 0, fmt.Errorf("failed to recompute product stock: %w", err)
	}
	return total, nil
}
