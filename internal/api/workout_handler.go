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

// WorkoutHandler serves workout submission, deletion and history reads.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	logger         *logrus.Entry
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, logger *logrus.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		logger:         logger.WithField("handler", "workouts"),
	}
}

// --- DTOs ---

// SetPayload is one set as submitted by the client: exactly the fields
// the store keeps.
type SetPayload struct {
	Reps       int      `json:"reps" binding:"required,min=1"`
	Weight     *float64 `json:"weight,omitempty" binding:"omitempty,min=0"`
	WeightUnit string   `json:"weightUnit,omitempty"`
}

// ExercisePayload is one exercise-instance: a catalog reference plus its
// ordered sets.
type ExercisePayload struct {
	Exercise string       `json:"exercise" binding:"required"`
	Sets     []SetPayload `json:"sets"`
}

// WorkoutPayload is the workout document shape of the save endpoint.
type WorkoutPayload struct {
	Date      time.Time         `json:"date" binding:"required"`
	Duration  int               `json:"duration" binding:"required,min=1"`
	Exercises []ExercisePayload `json:"exercises"`
}

// SaveWorkoutRequest wraps the payload the way the mobile client posts it.
type SaveWorkoutRequest struct {
	WorkoutData WorkoutPayload `json:"workoutData" binding:"required"`
}

// DeleteWorkoutRequest identifies the record to delete.
type DeleteWorkoutRequest struct {
	WorkoutID string `json:"workoutId" binding:"required"`
}

// SetResponse mirrors a persisted set.
type SetResponse struct {
	Reps       int      `json:"reps"`
	Weight     *float64 `json:"weight,omitempty"`
	WeightUnit string   `json:"weightUnit,omitempty"`
}

// ExerciseRefResponse is an expanded catalog reference.
type ExerciseRefResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ExerciseInstanceResponse is one performed exercise with its sets and
// per-exercise volume summary.
type ExerciseInstanceResponse struct {
	Exercise   ExerciseRefResponse `json:"exercise"`
	Sets       []SetResponse       `json:"sets"`
	Volume     float64             `json:"volume"`
	VolumeUnit string              `json:"volumeUnit"`
}

// WorkoutResponse is a workout record shaped for the history and detail
// screens, aggregates included.
type WorkoutResponse struct {
	ID                string                     `json:"id"`
	Date              time.Time                  `json:"date"`
	Duration          int                        `json:"duration"`
	DurationFormatted string                     `json:"durationFormatted"`
	TotalSets         int                        `json:"totalSets"`
	TotalVolume       float64                    `json:"totalVolume"`
	VolumeUnit        string                     `json:"volumeUnit"`
	Exercises         []ExerciseInstanceResponse `json:"exercises"`
}

// MapWorkoutToResponse converts a projected workout view to its DTO,
// computing the display aggregates.
func MapWorkoutToResponse(view *service.WorkoutView) WorkoutResponse {
	volume := service.TotalVolume(view.Exercises)
	resp := WorkoutResponse{
		ID:                view.ID.Hex(),
		Date:              view.Date,
		Duration:          view.Duration,
		DurationFormatted: service.FormatDuration(view.Duration),
		TotalSets:         service.TotalSets(view.Exercises),
		TotalVolume:       volume.Volume,
		VolumeUnit:        string(volume.Unit),
		Exercises:         make([]ExerciseInstanceResponse, 0, len(view.Exercises)),
	}

	for _, instance := range view.Exercises {
		exVolume := service.ExerciseVolume(instance.Sets)
		instResp := ExerciseInstanceResponse{
			Exercise: ExerciseRefResponse{
				ID:          instance.Exercise.ID.Hex(),
				Name:        instance.Exercise.Name,
				Description: instance.Exercise.Description,
			},
			Sets:       make([]SetResponse, 0, len(instance.Sets)),
			Volume:     exVolume.Volume,
			VolumeUnit: string(exVolume.Unit),
		}
		for _, set := range instance.Sets {
			instResp.Sets = append(instResp.Sets, SetResponse{
				Reps:       set.Reps,
				Weight:     set.Weight,
				WeightUnit: string(set.WeightUnit),
			})
		}
		resp.Exercises = append(resp.Exercises, instResp)
	}
	return resp
}

// --- Handler Methods ---

// SaveWorkout persists a submitted workout document for the authenticated
// user. The whole document is created atomically; on failure nothing is
// persisted.
// POST /api/v1/save-workout
func (h *WorkoutHandler) SaveWorkout(c *gin.Context) {
	var req SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	submission := service.WorkoutSubmission{
		UserID:   userID,
		Date:     req.WorkoutData.Date,
		Duration: req.WorkoutData.Duration,
	}
	for _, ex := range req.WorkoutData.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(ex.Exercise)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise reference: "+ex.Exercise)
			return
		}
		instance := service.SubmittedExercise{ExerciseID: exerciseID}
		for _, set := range ex.Sets {
			instance.Sets = append(instance.Sets, service.SubmittedSet{
				Reps:       set.Reps,
				Weight:     set.Weight,
				WeightUnit: domain.WeightUnit(set.WeightUnit),
			})
		}
		submission.Exercises = append(submission.Exercises, instance)
	}

	workoutID, err := h.workoutService.SaveWorkout(c.Request.Context(), submission)
	if err != nil {
		h.logger.WithError(err).Error("failed to save workout")
		abortWithError(c, http.StatusInternalServerError, "Failed to save workout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"workoutId": workoutID.Hex(),
		"message":   "Workout saved successfully",
	})
}

// DeleteWorkout removes one workout record owned by the authenticated
// user.
// POST /api/v1/delete-workout
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	var req DeleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout record not found.")
		} else {
			h.logger.WithError(err).Error("failed to delete workout")
			abortWithError(c, http.StatusInternalServerError, "Failed to delete workout record. Please try again.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListWorkouts returns the authenticated user's history, newest first.
// GET /api/v1/workouts
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	views, err := h.workoutService.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list workouts")
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}

	responses := make([]WorkoutResponse, 0, len(views))
	for i := range views {
		responses = append(responses, MapWorkoutToResponse(&views[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetWorkout returns one workout record with full reference expansion and
// display aggregates.
// GET /api/v1/workouts/:id
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	view, err := h.workoutService.GetWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout record not found.")
		} else {
			h.logger.WithError(err).Error("failed to fetch workout")
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout record.")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(view))
}
