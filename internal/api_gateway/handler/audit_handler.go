package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retail-ledger-engine/internal/api_gateway/service"
	"github.com/retail-ledger-engine/internal/domain/audit"
)

// AuditHandler serves the mutation history of an entity
type AuditHandler struct {
	auditService service.AuditService
	logger       *slog.Logger
}

func NewAuditHandler(logger *slog.Logger, auditService service.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// ListByEntity returns paginated audit events, newest first
func (h *AuditHandler) ListByEntity(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Warn("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	events, total, err := h.auditService.ListEntityEvents(c.Request.Context(), c.Param("entityType"), id, pagination.Page, pagination.PerPage)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	if events == nil {
		events = []*audit.Event{}
	}
	RespondWithPaginatedData(c, http.StatusOK, events, pagination.Page, pagination.PerPage, int(total))
}

// GetCommandEvent returns the audit event written by an applied command
func (h *AuditHandler) GetCommandEvent(c *gin.Context) {
	id, ok := parseID(c, h.logger, "id")
	if !ok {
		return
	}

	event, err := h.auditService.CommandEvent(c.Request.Context(), id)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}
	RespondOK(c, event)
}
