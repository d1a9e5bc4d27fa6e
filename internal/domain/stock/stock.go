package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Product carries the product-level stock aggregate
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StockQuantity int64     `json:"stock_quantity"`
}

// SKU is a stock-keeping unit of one product variant
type SKU struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	VariantID     uuid.UUID `json:"variant_id"`
	Code          string    `json:"code"`
	StockQuantity int64     `json:"stock_quantity"`
}

// Movement is one recorded stock quantity for a SKU. Both aggregates always equal the
// sum of the movements that currently exist.
type Movement struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	VariantID uuid.UUID `json:"variant_id"`
	SKUID     uuid.UUID `json:"sku_id"`
	Quantity  int64     `json:"quantity"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMovement validates the identifiers and quantity of a new movement
func NewMovement(productID, variantID, skuID uuid.UUID, quantity int64, actor uuid.UUID) (*Movement, error) {
	switch {
	case productID == uuid.Nil:
		return nil, shared.Invalid("product_id", "is required")
	case variantID == uuid.Nil:
		return nil, shared.Invalid("variant_id", "is required")
	case skuID == uuid.Nil:
		return nil, shared.Invalid("sku_id", "is required")
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Movement{
		ID:        uuid.New(),
		ProductID: productID,
		VariantID: variantID,
		SKUID:     skuID,
		Quantity:  quantity,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func ValidateQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.Invalid("quantity", "must not be negative, got %d", quantity)
	}
	return nil
}

// BelongsTo reports whether the SKU is the given product's variant
func (s *SKU) BelongsTo(productID, variantID uuid.UUID) bool {
	return s.ProductID == productID && s.VariantID == variantID
}
