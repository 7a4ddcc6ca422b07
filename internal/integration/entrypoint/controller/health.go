// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthProbeTimeout = 2 * time.Second

// HealthCheck probes one backing service.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthController handles health check endpoints.
type HealthController struct {
	checks        []HealthCheck
	auditFailures func() int64
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status             string            `json:"status"`
	Components         map[string]string `json:"components"`
	AuditWriteFailures int64             `json:"audit_write_failures"`
	Timestamp          string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// auditFailures may be nil.
func NewHealthController(checks []HealthCheck, auditFailures func() int64) *HealthController {
	return &HealthController{
		checks:        checks,
		auditFailures: auditFailures,
	}
}

// Check handles GET /health requests. Any failing probe turns the status to
// degraded and the response to 503.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	response := HealthResponse{
		Status:     "ok",
		Components: make(map[string]string, len(h.checks)),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			slog.Warn("Health probe failed", "component", check.Name, "error", err)
			response.Components[check.Name] = "down"
			response.Status = "degraded"
			continue
		}
		response.Components[check.Name] = "up"
	}
	if h.auditFailures != nil {
		response.AuditWriteFailures = h.auditFailures()
	}

	status := http.StatusOK
	if response.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}
