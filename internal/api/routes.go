package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, evaluations *EvaluationHandler, health *HealthHandler) {
	r.GET("/health", health.Liveness)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/evaluations", evaluations.CreateEvaluation)

		v1.GET("/health/providers", health.GetProviderHealth)
		v1.POST("/health/providers/reset", health.ResetProviderHealth)
	}
}
