package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("PanicBecomesEnvelopeWithRequestScope", func(t *testing.T) {
		var logBuffer bytes.Buffer
		testLogger := slog.New(slog.NewJSONHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelError}))

		router := gin.New()
		router.Use(CorrelationID(), Actor(), Recovery(testLogger))
		router.DELETE("/swaps/:id", func(c *gin.Context) {
			panic(errors.New("nil swap effect"))
		})

		correlationID := uuid.New().String()
		actorID := uuid.New()
		req, _ := http.NewRequest(http.MethodDelete, "/swaps/"+uuid.New().String(), nil)
		req.Header.Set(CorrelationIDHeader, correlationID)
		req.Header.Set(ActorIDHeader, actorID.String())

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
			CorrelationID string `json:"correlation_id"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "nil swap effect")
		assert.Equal(t, correlationID, body.CorrelationID)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, `"msg":"Panic recovered"`)
		assert.Contains(t, logOutput, `"method":"DELETE"`)
		assert.Contains(t, logOutput, `"stack":`)
		assert.Contains(t, logOutput, `"correlation_id":"`+correlationID+`"`)
		assert.Contains(t, logOutput, `"actor_id":"`+actorID.String()+`"`)
	})

	t.Run("LaterHandlersSkipped", func(t *testing.T) {
		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))))

		var reached bool
		router.GET("/stock", func(c *gin.Context) {
			panic("boom")
		}, func(c *gin.Context) {
			reached = true
		})

		req, _ := http.NewRequest(http.MethodGet, "/stock", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.False(t, reached)
		assert.NotContains(t, rr.Body.String(), "correlation_id")
	})

	t.Run("NoPanicNoLog", func(t *testing.T) {
		var logBuffer bytes.Buffer
		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewJSONHandler(&logBuffer, nil))))
		router.GET("/health", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, logBuffer.String())
	})
}
