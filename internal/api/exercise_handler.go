package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler serves the exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	catalog         *service.CatalogCache
	logger          *logrus.Entry
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, catalog *service.CatalogCache, logger *logrus.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		catalog:         catalog,
		logger:          logger.WithField("handler", "exercises"),
	}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse is the DTO for returning catalog entries.
type ExerciseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ImageAlt    string    `json:"imageAlt,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
// imageURL is resolved separately because presigning is a remote call.
func MapExerciseToResponse(ex *domain.Exercise, imageURL string) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		ID:          ex.ID.Hex(),
		Name:        ex.Name,
		Description: ex.Description,
		Difficulty:  string(ex.Difficulty),
		ImageURL:    imageURL,
		VideoURL:    ex.VideoURL,
		IsActive:    ex.IsActive,
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
	if ex.Image != nil {
		resp.ImageAlt = ex.Image.Alt
	}
	return resp
}

// --- Handler Methods ---

// ListExercises returns the cached catalog, filtered by the live search
// query. An empty query returns the full list.
// GET /api/v1/exercises?q=push
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.catalog.Filter(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.WithError(err).Error("failed to fetch exercise catalog")
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		// List responses skip image presigning; the detail endpoint
		// resolves the URL for the one exercise being viewed.
		responses[i] = MapExerciseToResponse(&exercises[i], "")
	}
	c.JSON(http.StatusOK, responses)
}

// RefreshExercises refetches the catalog (pull-to-refresh).
// POST /api/v1/exercises/refresh
func (h *ExerciseHandler) RefreshExercises(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("failed to refresh exercise catalog")
		abortWithError(c, http.StatusInternalServerError, "Failed to refresh exercises.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "catalog refreshed"})
}

// GetExerciseByID returns one catalog entry with its image resolved to a
// short-lived URL.
// GET /api/v1/exercises/:id
func (h *ExerciseHandler) GetExerciseByID(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found.")
		} else {
			h.logger.WithError(err).Error("failed to fetch exercise")
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}

	imageURL, err := h.exerciseService.ResolveImageURL(c.Request.Context(), exercise)
	if err != nil {
		// The record is still useful without its image; log and move on.
		h.logger.WithError(err).Warn("failed to resolve exercise image URL")
		imageURL = ""
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise, imageURL))
}
