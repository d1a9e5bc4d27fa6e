package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/audit"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// AuditServiceImpl implements the AuditService interface
type AuditServiceImpl struct {
	auditRepo audit.Repository
	logger    *slog.Logger
}

func NewAuditService(logger *slog.Logger, auditRepo audit.Repository) AuditService {
	return &AuditServiceImpl{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *AuditServiceImpl) ListEntityEvents(ctx context.Context, entityType string, entityID uuid.UUID, page, perPage int) ([]*audit.Event, int64, error) {
	et, err := shared.ParseEntityType(entityType)
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * perPage

	events, err := s.auditRepo.ListByEntity(ctx, et, entityID, perPage, offset)
	if err != nil {
		s.logger.Error("Failed to list audit events", "entity_type", et, "entity_id", entityID.String(), "error", err)
		return nil, 0, shared.Internal("list audit events", fmt.Errorf("failed to list audit events: %w", err))
	}

	total, err := s.auditRepo.CountByEntity(ctx, et, entityID)
	if err != nil {
		s.logger.Error("Failed to count audit events", "entity_type", et, "entity_id", entityID.String(), "error", err)
		return nil, 0, shared.Internal("count audit events", fmt.Errorf("failed to count audit events: %w", err))
	}

	return events, total, nil
}

func (s *AuditServiceImpl) CommandEvent(ctx context.Context, commandID uuid.UUID) (*audit.Event, error) {
	event, err := s.auditRepo.GetByEventID(ctx, commandID)
	if err != nil {
		if shared.KindOf(err) == shared.KindInternal {
			s.logger.Error("Failed to get command event", "command_id", commandID.String(), "error", err)
		}
		return nil, shared.Internal("get command event", err)
	}
	return event, nil
}
