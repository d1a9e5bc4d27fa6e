package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/retail-ledger-engine/internal/api_gateway/service"
	"github.com/retail-ledger-engine/internal/domain/sequence"
)

// SequenceHandler issues ACC, SWP and TO identifiers
type SequenceHandler struct {
	sequenceService service.SequenceService
	logger          *slog.Logger
}

func NewSequenceHandler(logger *slog.Logger, sequenceService service.SequenceService) *SequenceHandler {
	return &SequenceHandler{
		sequenceService: sequenceService,
		logger:          logger,
	}
}

// Next consumes one identifier of the namespace in the path
func (h *SequenceHandler) Next(c *gin.Context) {
	ns, err := sequence.ParseNamespace(c.Param("namespace"))
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	identifier, err := h.sequenceService.NextIdentifier(c.Request.Context(), ns)
	if err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondCreated(c, IdentifierResponse{Namespace: string(ns), Identifier: identifier})
}

// Sync raises every counter to the highest identifier already stored
func (h *SequenceHandler) Sync(c *gin.Context) {
	if err := h.sequenceService.SyncSequences(c.Request.Context()); err != nil {
		RespondWithEngineError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}
