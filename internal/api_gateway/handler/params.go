package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/command"
)

// parseID reads a UUID path parameter, answering 400 when it is malformed
func parseID(c *gin.Context, logger *slog.Logger, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid path identifier", "param", param, "value", raw, "error", err)
		RespondBadRequest(c, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// bindPayload decodes the JSON body into dst and runs the command payload validation
func bindPayload(c *gin.Context, logger *slog.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	if err := command.Validate(dst); err != nil {
		RespondBadRequest(c, err.Error())
		return false
	}
	return true
}
