package stock

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovement(t *testing.T) {
	productID, variantID, skuID := uuid.New(), uuid.New(), uuid.New()

	m, err := NewMovement(productID, variantID, skuID, 12, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.Quantity)
	assert.Equal(t, skuID, m.SKUID)

	zero, err := NewMovement(productID, variantID, skuID, 0, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, zero.Quantity)

	_, err = NewMovement(productID, variantID, skuID, -1, uuid.New())
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)

	_, err = NewMovement(productID, uuid.Nil, skuID, 1, uuid.New())
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestSKU_BelongsTo(t *testing.T) {
	sku := &SKU{ID: uuid.New(), ProductID: uuid.New(), VariantID: uuid.New()}

	assert.True(t, sku.BelongsTo(sku.ProductID, sku.VariantID))
	assert.False(t, sku.BelongsTo(sku.ProductID, uuid.New()))
	assert.False(t, sku.BelongsTo(uuid.New(), sku.VariantID))
}

func TestErrors_Classify(t *testing.T) {
	id := uuid.New()

	assert.ErrorIs(t, ErrSKUNotFound{SKUID: id}, shared.ErrNotFound)
	assert.ErrorIs(t, ErrProductNotFound{ProductID: id}, shared.ErrNotFound)
	assert.ErrorIs(t, ErrMovementNotFound{MovementID: id}, ErrMovementNotFound{})
	assert.NotErrorIs(t, ErrMovementNotFound{MovementID: id}, ErrMovementNotFound{MovementID: uuid.New()})
	assert.ErrorIs(t, ErrSKUMismatch{SKUID: id}, shared.ErrInvalidArgument)
}
