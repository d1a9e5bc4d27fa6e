package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/retail-ledger-engine/internal/domain/audit"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

const (
	// AuditCollectionName is the name of the audit event collection in MongoDB
	AuditCollectionName = "audit_events"
)

// eventDocument stores the before/after snapshots as embedded documents so that
// they stay queryable, instead of opaque JSON bytes.
type eventDocument struct {
	audit.Event `bson:",inline"`
	Before      bson.D `bson:"before,omitempty"`
	After       bson.D `bson:"after,omitempty"`
}

// AuditRepository implements the audit.Repository interface for MongoDB
type AuditRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAuditRepository creates a new MongoDB audit repository
func NewAuditRepository(logger *slog.Logger, db *mongo.Database) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureIndexes creates the unique event index and the per-entity history index
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(AuditCollectionName)

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_event_id"),
		},
		{
			Keys: bson.D{
				{Key: "entity_type", Value: 1},
				{Key: "entity_id", Value: 1},
				{Key: "occurred_at", Value: -1},
			},
			Options: options.Index().SetName("entity_history"),
		},
	})
	if err != nil {
		r.logger.Error("Failed to create audit indexes", "error", err)
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}
	return nil
}

// Create stores the event with an upsert keyed on EventID, so relaying the same
// outbox message twice leaves a single document.
func (r *AuditRepository) Create(ctx context.Context, event *audit.Event) error {
	collection := r.db.Collection(AuditCollectionName)

	doc, err := toDocument(event)
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}

	filter := bson.M{"event_id": event.EventID}
	update := bson.M{"$setOnInsert": doc}
	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to store audit event",
			"event_id", event.EventID.String(),
			"entity_type", string(event.EntityType),
			"error", err)
		return fmt.Errorf("failed to store audit event: %w", err)
	}

	return nil
}

// GetByEventID retrieves a single event. Returns ErrEventNotFound when absent.
func (r *AuditRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*audit.Event, error) {
	collection := r.db.Collection(AuditCollectionName)

	var doc eventDocument
	err := collection.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, audit.ErrEventNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get audit event", "event_id", eventID.String(), "error", err)
		return nil, fmt.Errorf("failed to get audit event: %w", err)
	}

	return fromDocument(&doc)
}

// ListByEntity retrieves paginated events for one entity, newest first
func (r *AuditRepository) ListByEntity(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID, limit, offset int) ([]*audit.Event, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"entity_type": entityType, "entity_id": entityID}
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list audit events",
			"entity_type", string(entityType),
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode audit events",
			"entity_type", string(entityType),
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode audit events: %w", err)
	}

	events := make([]*audit.Event, 0, len(docs))
	for i := range docs {
		event, err := fromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// CountByEntity counts the events recorded for one entity
func (r *AuditRepository) CountByEntity(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID) (int64, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"entity_type": entityType, "entity_id": entityID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count audit events",
			"entity_type", string(entityType),
			"entity_id", entityID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	return count, nil
}

func toDocument(event *audit.Event) (*eventDocument, error) {
	doc := &eventDocument{Event: *event}
	if len(event.Before) > 0 {
		if err := bson.UnmarshalExtJSON(event.Before, false, &doc.Before); err != nil {
			return nil, fmt.Errorf("before snapshot: %w", err)
		}
	}
	if len(event.After) > 0 {
		if err := bson.UnmarshalExtJSON(event.After, false, &doc.After); err != nil {
			return nil, fmt.Errorf("after snapshot: %w", err)
		}
	}
	return doc, nil
}

func fromDocument(doc *eventDocument) (*audit.Event, error) {
	event := doc.Event
	if doc.Before != nil {
		raw, err := bson.MarshalExtJSON(doc.Before, false, false)
		if err != nil {
			return nil, fmt.Errorf("failed to decode before snapshot: %w", err)
		}
		event.Before = raw
	}
	if doc.After != nil {
		raw, err := bson.MarshalExtJSON(doc.After, false, false)
		if err != nil {
			return nil, fmt.Errorf("failed to decode after snapshot: %w", err)
		}
		event.After = raw
	}
	return &event, nil
}
