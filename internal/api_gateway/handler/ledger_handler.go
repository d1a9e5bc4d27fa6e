package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/retail-ledger-engine/internal/api_gateway/middleware"
	"github.com/retail-ledger-engine/internal/api_gateway/service"
	"github.com/retail-ledger-engine/internal/domain/command"
)

// LedgerHandler exposes the synchronous ledger entry operations. Every write runs in
// one engine transaction, so a successful response means the balances already moved.
type LedgerHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(logger *slog.Logger, ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var req command.TransactionPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	t, err := h.ledgerService.CreateTransaction(c.Request.Context(), middleware.GetActorID(c), fields)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(t))
}

// UpdateTransaction reverses the stored effect and applies the revised one
func (h *LedgerHandler) UpdateTransaction(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}
	var req command.TransactionPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	t, err := h.ledgerService.UpdateTransaction(c.Request.Context(), id, fields)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(t))
}

func (h *LedgerHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), id); err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	t, err := h.ledgerService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(t))
}

// CreateBankTransaction posts against both the bank account and its linked account
func (h *LedgerHandler) CreateBankTransaction(c *gin.Context) {
	var req command.BankTransactionPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	bt, err := h.ledgerService.CreateBankTransaction(c.Request.Context(), middleware.GetActorID(c), fields)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapBankTransactionToResponse(bt))
}

func (h *LedgerHandler) UpdateBankTransaction(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}
	var req command.BankTransactionPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	bt, err := h.ledgerService.UpdateBankTransaction(c.Request.Context(), id, fields)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapBankTransactionToResponse(bt))
}

func (h *LedgerHandler) DeleteBankTransaction(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteBankTransaction(c.Request.Context(), id); err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

func (h *LedgerHandler) GetBankTransaction(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	bt, err := h.ledgerService.GetBankTransaction(c.Request.Context(), id)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapBankTransactionToResponse(bt))
}

// CreateSwap moves value between two accounts under a new SWP identifier
func (h *LedgerHandler) CreateSwap(c *gin.Context) {
	var req command.SwapPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	s, err := h.ledgerService.CreateSwap(c.Request.Context(), middleware.GetActorID(c), fields)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapSwapToResponse(s))
}

func (h *LedgerHandler) UpdateSwap(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}
	var req command.SwapPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}
	fields, err := req.Fields()
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	s, err := h.ledgerService.UpdateSwap(c.Request.Context(), id, fields)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapSwapToResponse(s))
}

func (h *LedgerHandler) DeleteSwap(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteSwap(c.Request.Context(), id); err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

func (h *LedgerHandler) GetSwap(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	s, err := h.ledgerService.GetSwap(c.Request.Context(), id)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapSwapToResponse(s))
}
