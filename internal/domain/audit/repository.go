package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Repository stores the mutation history
type Repository interface {
	// Create stores the event; an event already stored under the same EventID is left as is
	Create(ctx context.Context, event *Event) error
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*Event, error)
	// ListByEntity returns an entity's events newest first
	ListByEntity(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID, limit, offset int) ([]*Event, error)
	CountByEntity(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID) (int64, error)
}

// ErrEventNotFound indicates missing audit event
type ErrEventNotFound struct {
	EventID uuid.UUID
}

func (e ErrEventNotFound) Error() string {
	return "audit event not found: " + e.EventID.String()
}

func (e ErrEventNotFound) Is(target error) bool {
	if target == shared.ErrNotFound {
		return true
	}
	t, ok := target.(ErrEventNotFound)
	return ok && (t.EventID == uuid.Nil || t.EventID == e.EventID)
}
