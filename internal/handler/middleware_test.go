package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moodcheckin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-secret-key"

func newAuthTestRouter(t *testing.T, logs *bytes.Buffer) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewWithOutput(logs, "info", "json")
	require.NoError(t, err)

	reached := false
	r := gin.New()
	r.Use(RequestID(), APIKeyAuth(testAPIKey, logger))
	r.NoRoute(NotFound)
	r.POST("/mood", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusNoContent)
	})
	return r, &reached
}

func TestAPIKeyAuthAllowsMatchingKey(t *testing.T) {
	var logs bytes.Buffer
	r, reached := newAuthTestRouter(t, &logs)

	req := httptest.NewRequest(http.MethodPost, "/mood", nil)
	req.Header.Set(APIKeyHeader, testAPIKey)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, *reached)
}

func TestAPIKeyAuthRejects(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		key    string
	}{
		{name: "missing", method: http.MethodPost, path: "/mood"},
		{name: "wrong", method: http.MethodPost, path: "/mood", key: "nope"},
		{name: "prefix of secret", method: http.MethodPost, path: "/mood", key: testAPIKey[:4]},
		{name: "unknown route", method: http.MethodDelete, path: "/does-not-exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			r, reached := newAuthTestRouter(t, &logs)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"error":"Unauthorized. Missing or invalid API Key."}`, rr.Body.String())
			assert.False(t, *reached)
			assert.Contains(t, logs.String(), "api key rejected")
			assert.NotContains(t, logs.String(), testAPIKey)
		})
	}
}

func TestNotFoundAfterAuth(t *testing.T) {
	var logs bytes.Buffer
	r, _ := newAuthTestRouter(t, &logs)

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(APIKeyHeader, testAPIKey)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"status":"fail","errors":{"route":"route not found"}}`, rr.Body.String())
}

func TestRequestIDIsAssignedOrPropagated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, requestID(c))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rr.Body.String(), 36)
	assert.Equal(t, rr.Body.String(), rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Body.String())
}

func TestRecoveryRendersErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	logger, err := logging.NewWithOutput(&logs, "info", "text")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), Recovery(logger))
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"status":"error","message":"Internal server error"}`, rr.Body.String())
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "status=500")
}
