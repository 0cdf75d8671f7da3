package main

import (
	"alcyxob/fittrack/internal/ai"
	"alcyxob/fittrack/internal/api"
	"alcyxob/fittrack/internal/config"
	"alcyxob/fittrack/internal/draft"
	"alcyxob/fittrack/internal/prefs"
	mongorepo "alcyxob/fittrack/internal/repository/mongo"
	"alcyxob/fittrack/internal/service"
	"alcyxob/fittrack/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.Info("starting fittrack server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.WithError(err).Fatal("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			logger.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongorepo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongorepo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
	}()

	// --- Local Preference Store ---
	prefStore, err := prefs.Open(cfg.Prefs.Dir)
	if err != nil {
		logger.WithError(err).Fatal("failed to open preference store")
	}
	defer func() {
		if err := prefStore.Close(); err != nil {
			logger.WithError(err).Error("failed to close preference store")
		}
	}()

	// --- Asset Storage ---
	assetStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize asset storage")
	}

	// --- Repositories ---
	exerciseRepo := mongorepo.NewMongoExerciseRepository(appDB)
	workoutRepo := mongorepo.NewMongoWorkoutRepository(appDB)

	// --- Services ---
	drafts := draft.NewManager(prefStore, logger)
	exerciseService := service.NewExerciseService(exerciseRepo, assetStorage)
	catalog := service.NewCatalogCache(exerciseService)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo, drafts)
	completionClient := ai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	guidanceService := service.NewGuidanceService(completionClient, logger)

	// --- HTTP ---
	router := gin.Default()
	api.SetupRoutes(router, cfg.Auth.JWTSecret, exerciseService, catalog, workoutService, guidanceService, drafts, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.WithField("address", cfg.Server.Address).Info("server starting")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen and serve error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server exiting")
}
