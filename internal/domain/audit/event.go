package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Event records one committed mutation: the entity snapshot before and after it and the
// balance adjustments it issued.
type Event struct {
	EventID       uuid.UUID           `json:"event_id" bson:"event_id"`
	EntityType    shared.EntityType   `json:"entity_type" bson:"entity_type"`
	EntityID      uuid.UUID           `json:"entity_id" bson:"entity_id"`
	Operation     shared.Operation    `json:"operation" bson:"operation"`
	ActorID       uuid.UUID           `json:"actor_id" bson:"actor_id"`
	CorrelationID string              `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	Before        json.RawMessage     `json:"before,omitempty" bson:"-"`
	After         json.RawMessage     `json:"after,omitempty" bson:"-"`
	Adjustments   []ledger.Adjustment `json:"adjustments,omitempty" bson:"adjustments,omitempty"`
	OccurredAt    time.Time           `json:"occurred_at" bson:"occurred_at"`
}

// NewEvent snapshots before and after as JSON. Either may be nil.
func NewEvent(entityType shared.EntityType, entityID uuid.UUID, op shared.Operation,
	before, after any, adjustments []ledger.Adjustment) (*Event, error) {
	e := &Event{
		EventID:     uuid.New(),
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   op,
		Adjustments: adjustments,
		OccurredAt:  time.Now().UTC(),
	}

	var err error
	if e.Before, err = snapshot(before); err != nil {
		return nil, fmt.Errorf("failed to snapshot %s before %s: %w", entityType, op, err)
	}
	if e.After, err = snapshot(after); err != nil {
		return nil, fmt.Errorf("failed to snapshot %s after %s: %w", entityType, op, err)
	}
	return e, nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
