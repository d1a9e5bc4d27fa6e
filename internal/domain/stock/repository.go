package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Repository manages stock movements and their aggregates
type Repository interface {
	// GetSKUForUpdate and GetProductForUpdate lock the aggregate row until the transaction ends.
	// A mutation locks the SKU before its product.
	GetSKUForUpdate(ctx context.Context, id uuid.UUID) (*SKU, error)
	GetProductForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	CreateMovement(ctx context.Context, m *Movement) error
	GetMovementForUpdate(ctx context.Context, id uuid.UUID) (*Movement, error)
	UpdateMovementQuantity(ctx context.Context, id uuid.UUID, quantity int64) error
	DeleteMovement(ctx context.Context, id uuid.UUID) error

	// RecomputeSKU sets the SKU aggregate to the sum of its movements and returns it
	RecomputeSKU(ctx context.Context, skuID uuid.UUID) (int64, error)
	// RecomputeProduct sets the product aggregate to the sum of its movements and returns it
	RecomputeProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrSKUNotFound indicates missing SKU
type ErrSKUNotFound struct {
	SKUID uuid.UUID
}

func (e ErrSKUNotFound) Error() string {
	return "sku not found: " + e.SKUID.String()
}

func (e ErrSKUNotFound) Is(target error) bool {
	return target == shared.ErrNotFound
}

// ErrProductNotFound indicates missing product
type ErrProductNotFound struct {
	ProductID uuid.UUID
}

func (e ErrProductNotFound) Error() string {
	return "product not found: " + e.ProductID.String()
}

func (e ErrProductNotFound) Is(target error) bool {
	return target == shared.ErrNotFound
}

// ErrMovementNotFound indicates missing stock movement
type ErrMovementNotFound struct {
	MovementID uuid.UUID
}

func (e ErrMovementNotFound) Error() string {
	return "stock movement not found: " + e.MovementID.String()
}

func (e ErrMovementNotFound) Is(target error) bool {
	if target == shared.ErrNotFound {
		return true
	}
	t, ok := target.(ErrMovementNotFound)
	return ok && (t.MovementID == uuid.Nil || t.MovementID == e.MovementID)
}

// ErrSKUMismatch indicates a SKU that is not the given product's variant
type ErrSKUMismatch struct {
	SKUID     uuid.UUID
	ProductID uuid.UUID
	VariantID uuid.UUID
}

func (e ErrSKUMismatch) Error() string {
	return "sku " + e.SKUID.String() + " does not belong to product " + e.ProductID.String() +
		" variant " + e.VariantID.String()
}

func (e ErrSKUMismatch) Is(target error) bool {
	return target == shared.ErrInvalidArgument
}
