package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/api_gateway/middleware"
	"github.com/retail-ledger-engine/internal/domain/stock"
	"github.com/retail-ledger-engine/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStockHandler(t *testing.T) {
	productID, variantID, skuID := uuid.New(), uuid.New(), uuid.New()

	t.Run("CreateReturnsAggregates", func(t *testing.T) {
		mockService := new(MockStockService)
		h := NewStockHandler(testLogger, mockService)
		r := newTestRouter()
		r.POST("/stock-movements", h.Create)

		actorID := uuid.New()
		level := &engine.StockLevel{
			Movement:     &stock.Movement{ID: uuid.New(), ProductID: productID, VariantID: variantID, SKUID: skuID, Quantity: 3},
			SKUStock:     7,
			ProductStock: 19,
		}
		mockService.On("CreateStockMovement", mock.Anything, actorID, productID, variantID, skuID, int64(3)).Return(level, nil)

		body := fmt.Sprintf(`{"product_id":%q,"variant_id":%q,"sku_id":%q,"quantity":3}`, productID, variantID, skuID)
		rr := serve(r, http.MethodPost, "/stock-movements", body, map[string]string{middleware.ActorIDHeader: actorID.String()})

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decode[engine.StockLevel](t, rr)
		assert.Equal(t, int64(7), resp.Data.SKUStock)
		assert.Equal(t, int64(19), resp.Data.ProductStock)
		mockService.AssertExpectations(t)
	})

	t.Run("CreateSKUMismatch", func(t *testing.T) {
		mockService := new(MockStockService)
		h := NewStockHandler(testLogger, mockService)
		r := newTestRouter()
		r.POST("/stock-movements", h.Create)

		mockService.On("CreateStockMovement", mock.Anything, uuid.Nil, productID, variantID, skuID, int64(2)).
			Return(nil, stock.ErrSKUMismatch{SKUID: skuID, ProductID: productID, VariantID: variantID})

		body := fmt.Sprintf(`{"product_id":%q,"variant_id":%q,"sku_id":%q,"quantity":2}`, productID, variantID, skuID)
		rr := serve(r, http.MethodPost, "/stock-movements", body, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Update", func(t *testing.T) {
		mockService := new(MockStockService)
		h := NewStockHandler(testLogger, mockService)
		r := newTestRouter()
		r.PUT("/stock-movements/:id", h.Update)

		id := uuid.New()
		level := &engine.StockLevel{Movement: &stock.Movement{ID: id, Quantity: 5}, SKUStock: 5, ProductStock: 5}
		mockService.On("UpdateStockMovement", mock.Anything, id, int64(5)).Return(level, nil)

		rr := serve(r, http.MethodPut, "/stock-movements/"+id.String(), `{"quantity":5}`, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		mockService := new(MockStockService)
		h := NewStockHandler(testLogger, mockService)
		r := newTestRouter()
		r.DELETE("/stock-movements/:id", h.Delete)

		id := uuid.New()
		mockService.On("DeleteStockMovement", mock.Anything, id).Return(stock.ErrMovementNotFound{MovementID: id})

		rr := serve(r, http.MethodDelete, "/stock-movements/"+id.String(), "", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}
