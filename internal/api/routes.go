package api

import (
	"alcyxob/fittrack/internal/draft"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes wires all handlers onto the router. Every route except the
// health check requires a valid provider-issued bearer token.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	exerciseService service.ExerciseService,
	catalog *service.CatalogCache,
	workoutService service.WorkoutService,
	guidanceService service.GuidanceService,
	drafts *draft.Manager,
	logger *logrus.Logger,
) {
	exerciseHandler := NewExerciseHandler(exerciseService, catalog, logger)
	workoutHandler := NewWorkoutHandler(workoutService, logger)
	sessionHandler := NewSessionHandler(drafts, workoutService, logger)
	aiHandler := NewAIHandler(guidanceService)
	profileHandler := NewProfileHandler(workoutService, logger)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(authMiddleware)
	{
		apiV1.GET("/me", profileHandler.GetProfile)

		// --- Exercise Catalog ---
		exerciseGroup := apiV1.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("/refresh", exerciseHandler.RefreshExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExerciseByID)
		}

		// --- Workout Session Draft ---
		sessionGroup := apiV1.Group("/session")
		{
			sessionGroup.GET("", sessionHandler.GetSession)
			sessionGroup.DELETE("", sessionHandler.ResetSession)
			sessionGroup.POST("/exercises", sessionHandler.AddExercise)
			sessionGroup.PUT("/exercises", sessionHandler.ReplaceExercises)
			sessionGroup.PUT("/weight-unit", sessionHandler.SetWeightUnit)
			sessionGroup.POST("/complete", sessionHandler.CompleteSession)
		}

		// --- Workout Records ---
		apiV1.GET("/workouts", workoutHandler.ListWorkouts)
		apiV1.GET("/workouts/:id", workoutHandler.GetWorkout)
		// The save/delete routes keep the shapes the mobile client posts to.
		apiV1.POST("/save-workout", workoutHandler.SaveWorkout)
		apiV1.POST("/delete-workout", workoutHandler.DeleteWorkout)

		// --- AI Guidance ---
		apiV1.POST("/ai", aiHandler.GenerateGuidance)
	}
}
