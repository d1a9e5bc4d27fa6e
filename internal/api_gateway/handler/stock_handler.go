package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/retail-ledger-engine/internal/api_gateway/middleware"
	"github.com/retail-ledger-engine/internal/api_gateway/service"
	"github.com/retail-ledger-engine/internal/domain/command"
)

// StockHandler handles stock movement requests. Responses carry the recomputed aggregates.
type StockHandler struct {
	stockService service.StockService
	logger       *slog.Logger
}

func NewStockHandler(logger *slog.Logger, stockService service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		logger:       logger,
	}
}

func (h *StockHandler) Create(c *gin.Context) {
	var req command.StockMovementPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}

	level, err := h.stockService.CreateStockMovement(c.Request.Context(), middleware.GetActorID(c),
		req.ProductID, req.VariantID, req.SKUID, req.Quantity)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondCreated(c, level)
}

// Update replaces the quantity of an existing movement
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}
	var req command.StockQuantityPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}

	level, err := h.stockService.UpdateStockMovement(c.Request.Context(), id, req.Quantity)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, level)
}

func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	if err := h.stockService.DeleteStockMovement(c.Request.Context(), id); err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}
