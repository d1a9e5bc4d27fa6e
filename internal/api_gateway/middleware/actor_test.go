package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var (
		fromGin     uuid.UUID
		fromRequest uuid.UUID
		hasActor    bool
		reached     bool
	)
	router := gin.New()
	router.Use(CorrelationID())
	router.Use(Actor())
	router.POST("/test", func(c *gin.Context) {
		reached = true
		fromGin = GetActorID(c)
		fromRequest, hasActor = shared.ActorFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	serve := func(header string) *httptest.ResponseRecorder {
		reached, hasActor = false, false
		req, _ := http.NewRequest(http.MethodPost, "/test", nil)
		if header != "" {
			req.Header.Set(ActorIDHeader, header)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("AttachesValidActor", func(t *testing.T) {
		actorID := uuid.New()
		rr := serve(actorID.String())

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, actorID, fromGin)
		assert.True(t, hasActor)
		assert.Equal(t, actorID, fromRequest)
	})

	t.Run("MissingHeaderPassesThrough", func(t *testing.T) {
		rr := serve("")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.True(t, reached)
		assert.False(t, hasActor)
		assert.Equal(t, uuid.Nil, fromGin)
	})

	t.Run("RejectsMalformedHeader", func(t *testing.T) {
		for _, header := range []string{"not-a-uuid", uuid.Nil.String()} {
			rr := serve(header)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.False(t, reached)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "BAD_REQUEST", body["error"].(map[string]any)["code"])
			assert.NotEmpty(t, body["correlation_id"])
		}
	})
}
