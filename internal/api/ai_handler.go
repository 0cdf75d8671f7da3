package api

import (
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AIHandler serves exercise guidance generation.
type AIHandler struct {
	guidanceService service.GuidanceService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(guidanceService service.GuidanceService) *AIHandler {
	return &AIHandler{guidanceService: guidanceService}
}

// GuidanceRequest names the exercise to generate guidance for.
type GuidanceRequest struct {
	ExerciseName string `json:"exerciseName"`
}

// GenerateGuidance returns markdown coaching guidance for an exercise.
// Upstream failures degrade to a fixed fallback message in the same
// response slot; only a missing exercise name is an error.
// POST /api/v1/ai
func (h *AIHandler) GenerateGuidance(c *gin.Context) {
	var req GuidanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ExerciseName == "" {
		abortWithError(c, http.StatusBadRequest, "Exercise name is required")
		return
	}

	message := h.guidanceService.GuidanceFor(c.Request.Context(), req.ExerciseName)
	c.JSON(http.StatusOK, gin.H{"message": message})
}
