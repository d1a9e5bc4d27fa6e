package shared

import (
	"context"

	"github.com/google/uuid"
)

type contextKey int

const (
	actorKey contextKey = iota
	correlationIDKey
	commandIDKey
)

// WithActor attaches the session-derived actor identity used for attribution
func WithActor(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey, actorID)
}

// ActorFromContext returns the actor attached by WithActor
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithCorrelationID attaches a request correlation ID
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// CorrelationIDFromContext returns the correlation ID or ""
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// WithCommandID attaches the ID of the asynchronous command being applied. A mutation
// running under it records its audit event with that ID, so it commits at most once.
func WithCommandID(ctx context.Context, commandID uuid.UUID) context.Context {
	return context.WithValue(ctx, commandIDKey, commandID)
}

// CommandIDFromContext returns the command attached by WithCommandID
func CommandIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(commandIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
