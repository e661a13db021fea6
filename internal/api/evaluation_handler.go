package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/models"
)

// Evaluator runs the viability pipeline for one idea
type Evaluator interface {
	Evaluate(ctx context.Context, idea models.Idea) (*models.EvaluationReport, error)
}

// EvaluationHandler serves idea evaluations
type EvaluationHandler struct {
	evaluator Evaluator
	logger    logger.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluator Evaluator, log logger.Logger) *EvaluationHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &EvaluationHandler{
		evaluator: evaluator,
		logger:    log.With("handler", "evaluation"),
	}
}

// CreateEvaluation scores the idea in the request body and returns the full report
func (h *EvaluationHandler) CreateEvaluation(c *gin.Context) {
	var idea models.Idea
	if err := c.ShouldBindJSON(&idea); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  errors.ErrCodeInvalidInput,
		})
		return
	}

	report, err := h.evaluator.Evaluate(c.Request.Context(), idea)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && errors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   appErr.Message,
				"code":    appErr.Code,
				"details": appErr.Details,
			})
			return
		}

		h.logger.Error("evaluation failed", err, "idea", idea.Name)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to evaluate idea",
			"code":  errors.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
