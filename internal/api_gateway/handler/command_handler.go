package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/retail-ledger-engine/internal/api_gateway/service"
	"github.com/retail-ledger-engine/internal/domain/command"
)

// CommandHandler queues mutations on the command topic for the ledger processor
type CommandHandler struct {
	commandService service.CommandService
	logger         *slog.Logger
}

func NewCommandHandler(logger *slog.Logger, commandService service.CommandService) *CommandHandler {
	return &CommandHandler{
		commandService: commandService,
		logger:         logger,
	}
}

// Submit answers 202 with the command ID. The outcome is observable through the audit trail.
func (h *CommandHandler) Submit(c *gin.Context) {
	var req SubmitCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cmd, err := h.commandService.Submit(c.Request.Context(), command.Type(req.Type), req.Payload)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondAccepted(c, CommandAcceptedResponse{
		CommandID: cmd.CommandID.String(),
		Type:      string(cmd.Type),
		Status:    "QUEUED",
	})
}
