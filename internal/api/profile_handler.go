package api

import (
	"alcyxob/fittrack/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileHandler serves the identity profile plus derived fitness stats.
type ProfileHandler struct {
	workoutService service.WorkoutService
	logger         *logrus.Entry
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(workoutService service.WorkoutService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		workoutService: workoutService,
		logger:         logger.WithField("handler", "profile"),
	}
}

// ProfileStatsResponse is the stats block of the profile screen.
type ProfileStatsResponse struct {
	TotalWorkouts            int    `json:"totalWorkouts"`
	TotalDuration            int    `json:"totalDuration"`
	TotalDurationFormatted   string `json:"totalDurationFormatted"`
	AverageDuration          int    `json:"averageDuration"`
	AverageDurationFormatted string `json:"averageDurationFormatted"`
	DaysSinceJoining         int    `json:"daysSinceJoining"`
}

// ProfileResponse combines identity claims with workout stats.
type ProfileResponse struct {
	Profile Profile              `json:"profile"`
	Stats   ProfileStatsResponse `json:"stats"`
}

// GetProfile returns the authenticated user's identity fields (straight
// from the auth provider's token) and their aggregated workout stats.
// GET /api/v1/me
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := getProfileFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), profile.UserID)
	if err != nil {
		h.logger.WithError(err).Error("failed to load workouts for profile stats")
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile stats.")
		return
	}

	totalDuration := service.TotalDuration(workouts)
	averageDuration := service.AverageDuration(workouts)

	stats := ProfileStatsResponse{
		TotalWorkouts:            len(workouts),
		TotalDuration:            totalDuration,
		TotalDurationFormatted:   service.FormatDuration(totalDuration),
		AverageDuration:          averageDuration,
		AverageDurationFormatted: service.FormatDuration(averageDuration),
	}
	if !profile.CreatedAt.IsZero() {
		stats.DaysSinceJoining = int(time.Since(profile.CreatedAt).Hours() / 24)
	}

	c.JSON(http.StatusOK, ProfileResponse{Profile: profile, Stats: stats})
}
