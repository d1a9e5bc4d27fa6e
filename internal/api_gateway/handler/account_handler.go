package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/retail-ledger-engine/internal/api_gateway/middleware"
	"github.com/retail-ledger-engine/internal/api_gateway/service"
	"github.com/retail-ledger-engine/internal/domain/command"
)

// AccountHandler handles HTTP requests for accounts and bank accounts
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create opens an account with zero balances. Duplicate names answer 409.
func (h *AccountHandler) Create(c *gin.Context) {
	var req command.AccountPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), req.Name, req.IsDefault)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// List returns every account ordered by name
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		response = append(response, mapAccountToResponse(acc))
	}
	RespondOK(c, response)
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	acc, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// SetDefault makes the account the default one, clearing the flag elsewhere
func (h *AccountHandler) SetDefault(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	acc, err := h.accountService.SetDefaultAccount(c.Request.Context(), id)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// CreateBankAccount opens a bank account numbered from the ACC sequence
func (h *AccountHandler) CreateBankAccount(c *gin.Context) {
	var req command.BankAccountPayload
	if !bindPayload(c, h.logger, &req) {
		return
	}

	ba, err := h.accountService.CreateBankAccount(c.Request.Context(), middleware.GetActorID(c), req.HolderName)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapBankAccountToResponse(ba))
}

func (h *AccountHandler) GetBankAccount(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	ba, err := h.accountService.GetBankAccount(c.Request.Context(), id)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondOK(c, mapBankAccountToResponse(ba))
}
