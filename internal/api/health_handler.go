package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/ideascore/internal/providers"
)

// ProviderHealth exposes the per-provider health monitors
type ProviderHealth interface {
	Statuses() []providers.HealthStatus
	AllHealthy() bool
	ResetAll()
}

// HealthHandler serves liveness and provider health
type HealthHandler struct {
	health      ProviderHealth
	credentials map[string]bool
}

// NewHealthHandler creates a new health handler. credentials maps provider
// name to whether its API key is configured.
func NewHealthHandler(health ProviderHealth, credentials map[string]bool) *HealthHandler {
	return &HealthHandler{
		health:      health,
		credentials: credentials,
	}
}

// Liveness reports that the process is serving requests
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

// GetProviderHealth returns the health status of every provider that has been called.
// Unhealthy providers do not fail the request; evaluations degrade instead.
func (h *HealthHandler) GetProviderHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"healthy":     h.health.AllHealthy(),
		"providers":   h.health.Statuses(),
		"credentials": h.credentials,
		"timestamp":   time.Now(),
	})
}

// ResetProviderHealth clears all provider health monitors
func (h *HealthHandler) ResetProviderHealth(c *gin.Context) {
	h.health.ResetAll()

	c.JSON(http.StatusOK, gin.H{
		"message":   "Provider health monitors reset successfully",
		"timestamp": time.Now(),
	})
}
