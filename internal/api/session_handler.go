package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/draft"
	"alcyxob/fittrack/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler serves the in-progress workout draft: the exercise list
// being built, the weight-unit preference, and completion.
type SessionHandler struct {
	drafts         *draft.Manager
	workoutService service.WorkoutService
	logger         *logrus.Entry
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(drafts *draft.Manager, workoutService service.WorkoutService, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		drafts:         drafts,
		workoutService: workoutService,
		logger:         logger.WithField("handler", "session"),
	}
}

// --- DTOs ---

// AddDraftExerciseRequest adds a catalog exercise to the draft. The name
// is cached as sent; it is display-only and stripped again at submission.
type AddDraftExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// DraftSetPayload is one editable set. An empty id means "new"; the
// server assigns the local identity.
type DraftSetPayload struct {
	ID         string   `json:"id"`
	Reps       int      `json:"reps"`
	Weight     *float64 `json:"weight,omitempty"`
	WeightUnit string   `json:"weightUnit"`
	Completed  bool     `json:"completed"`
}

// DraftExercisePayload is one editable draft entry.
type DraftExercisePayload struct {
	ID         string            `json:"id"`
	ExerciseID string            `json:"exerciseId" binding:"required"`
	Name       string            `json:"name"`
	Sets       []DraftSetPayload `json:"sets"`
}

// ReplaceDraftRequest swaps the draft's exercise list wholesale. All
// set-level edits (add/remove/update/reorder) arrive through this.
type ReplaceDraftRequest struct {
	Exercises []DraftExercisePayload `json:"exercises"`
}

// SetWeightUnitRequest updates the global unit preference.
type SetWeightUnitRequest struct {
	Unit string `json:"unit" binding:"required"`
}

// CompleteWorkoutRequest finishes the draft as a persisted workout.
type CompleteWorkoutRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Duration int       `json:"duration" binding:"required,min=1"`
}

// SessionResponse is the current draft state.
type SessionResponse struct {
	Exercises  []domain.DraftExercise `json:"exercises"`
	WeightUnit domain.WeightUnit      `json:"weightUnit"`
}

func sessionResponse(store *draft.Store) SessionResponse {
	exercises := store.Exercises()
	if exercises == nil {
		exercises = []domain.DraftExercise{}
	}
	return SessionResponse{
		Exercises:  exercises,
		WeightUnit: store.WeightUnit(),
	}
}

// --- Handler Methods ---

// GetSession returns the current draft.
// GET /api/v1/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	c.JSON(http.StatusOK, sessionResponse(h.drafts.ForUser(userID)))
}

// AddExercise appends a new draft entry. Repeats of the same catalog
// exercise are allowed; each becomes its own entry.
// POST /api/v1/session/exercises
func (h *SessionHandler) AddExercise(c *gin.Context) {
	var req AddDraftExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	store := h.drafts.ForUser(userID)
	entry := store.AddExercise(exerciseID, req.Name)
	c.JSON(http.StatusCreated, entry)
}

// ReplaceExercises installs a new draft exercise list wholesale.
// PUT /api/v1/session/exercises
func (h *SessionHandler) ReplaceExercises(c *gin.Context) {
	var req ReplaceDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	store := h.drafts.ForUser(userID)

	next := make([]domain.DraftExercise, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(ex.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format: "+ex.ExerciseID)
			return
		}
		entry := domain.DraftExercise{
			ID:         ex.ID,
			ExerciseID: exerciseID,
			Name:       ex.Name,
			Sets:       make([]domain.DraftSet, 0, len(ex.Sets)),
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		for _, set := range ex.Sets {
			draftSet := domain.DraftSet{
				ID:         set.ID,
				Reps:       set.Reps,
				Weight:     set.Weight,
				WeightUnit: domain.WeightUnit(set.WeightUnit),
				Completed:  set.Completed,
			}
			if draftSet.ID == "" {
				draftSet.ID = uuid.NewString()
			}
			if !draftSet.WeightUnit.IsValid() {
				// New sets default to the current preference.
				draftSet.WeightUnit = store.WeightUnit()
			}
			entry.Sets = append(entry.Sets, draftSet)
		}
		next = append(next, entry)
	}

	store.ReplaceExercises(next)
	c.JSON(http.StatusOK, sessionResponse(store))
}

// SetWeightUnit updates the unit preference. The in-memory value changes
// immediately; durable persistence is best-effort in the background.
// PUT /api/v1/session/weight-unit
func (h *SessionHandler) SetWeightUnit(c *gin.Context) {
	var req SetWeightUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	unit := domain.WeightUnit(req.Unit)
	if !unit.IsValid() {
		abortWithError(c, http.StatusBadRequest, "Weight unit must be \"kg\" or \"lbs\".")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	store := h.drafts.ForUser(userID)
	store.SetWeightUnit(unit)
	c.JSON(http.StatusOK, gin.H{"weightUnit": unit})
}

// ResetSession discards the draft. The weight unit survives.
// DELETE /api/v1/session
func (h *SessionHandler) ResetSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	store := h.drafts.ForUser(userID)
	store.Reset()
	c.JSON(http.StatusOK, sessionResponse(store))
}

// CompleteSession submits the draft as a workout record. On success the
// draft is cleared; on failure it is preserved so the user can retry.
// POST /api/v1/session/complete
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workoutID, err := h.workoutService.CompleteWorkout(c.Request.Context(), userID, req.Date, req.Duration)
	if err != nil {
		h.logger.WithError(err).Error("failed to complete workout")
		abortWithError(c, http.StatusInternalServerError, "Failed to save workout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"workoutId": workoutID.Hex(),
		"message":   "Workout saved successfully",
	})
}
