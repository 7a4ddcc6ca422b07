package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkHealth(t *testing.T, h *HealthController) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Check)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthController_Check(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all components up", func(t *testing.T) {
		h := NewHealthController([]HealthCheck{
			{Name: "database", Probe: up},
			{Name: "redis", Probe: up},
		}, func() int64 { return 2 })

		code, body := checkHealth(t, h)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, map[string]string{"database": "up", "redis": "up"}, body.Components)
		assert.Equal(t, int64(2), body.AuditWriteFailures)
		assert.NotEmpty(t, body.Timestamp)
	})

	t.Run("failing component degrades", func(t *testing.T) {
		h := NewHealthController([]HealthCheck{
			{Name: "database", Probe: up},
			{Name: "redis", Probe: down},
		}, nil)

		code, body := checkHealth(t, h)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "down", body.Components["redis"])
		assert.Equal(t, "up", body.Components["database"])
		assert.Zero(t, body.AuditWriteFailures)
	})
}
