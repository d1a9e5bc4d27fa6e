package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

const (
	// ActorIDHeader carries the authenticated user the upstream session resolved
	ActorIDHeader = "X-Actor-ID"

	// ActorIDKey is the key used to store the actor in the gin context
	ActorIDKey = "actor_id"
)

// Actor attaches the X-Actor-ID identity to the request context. A missing header is
// allowed here; mutations without an actor are rejected by the engine.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ActorIDHeader)
		if raw == "" {
			c.Next()
			return
		}

		actorID, err := uuid.Parse(raw)
		if err != nil || actorID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "BAD_REQUEST",
					"message": "Invalid " + ActorIDHeader + " header",
				},
				"correlation_id": GetCorrelationID(c),
			})
			return
		}

		c.Set(ActorIDKey, actorID)
		c.Request = c.Request.WithContext(shared.WithActor(c.Request.Context(), actorID))

		c.Next()
	}
}

// GetActorID returns the actor set by Actor, or uuid.Nil
func GetActorID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(ActorIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
