package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("GeneratesIDWhenHeaderMissing", func(t *testing.T) {
		router := gin.New()
		router.Use(CorrelationID())

		var seen string
		router.GET("/x", func(c *gin.Context) {
			seen = GetCorrelationID(c)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/x", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err, "generated correlation ID should be a UUID")
		assert.Equal(t, seen, rr.Header().Get(CorrelationIDHeader))
	})

	t.Run("PropagatesExistingHeader", func(t *testing.T) {
		router := gin.New()
		router.Use(CorrelationID())
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		testID := uuid.New().String()
		req, _ := http.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(CorrelationIDHeader, testID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, testID, rr.Header().Get(CorrelationIDHeader))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logBuffer bytes.Buffer
	testLogger := slog.New(slog.NewJSONHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelError}))

	router := gin.New()
	router.Use(CorrelationID())
	router.Use(Recovery(testLogger))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	testID := uuid.New().String()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(CorrelationIDHeader, testID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var jsonResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jsonResponse))
	errorField, ok := jsonResponse["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorField["code"])
	assert.Equal(t, testID, jsonResponse["correlation_id"])
	assert.Contains(t, logBuffer.String(), "boom")
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logBuffer bytes.Buffer
	testLogger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

	router := gin.New()
	router.Use(CorrelationID())
	router.Use(Logger(testLogger))
	router.GET("/logged", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/logged?limit=5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "HTTP request")
	assert.Contains(t, logOutput, "/logged?limit=5")
	assert.Contains(t, logOutput, `"status":200`)
}
