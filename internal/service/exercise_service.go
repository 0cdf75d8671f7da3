package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/storage"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
)

// ExerciseService exposes read access to the exercise catalog.
type ExerciseService interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	// ResolveImageURL returns a short-lived URL for the exercise image, or
	// "" when the exercise has none.
	ResolveImageURL(ctx context.Context, exercise *domain.Exercise) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	assets       storage.AssetStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, assets storage.AssetStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		assets:       assets,
	}
}

// ListExercises returns the full catalog, inactive entries included; the
// caller decides what to surface.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// GetExerciseByID retrieves a single catalog exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ResolveImageURL presigns the exercise's image object key. The image file
// itself lives in the asset bucket, managed by the content tooling.
func (s *exerciseService) ResolveImageURL(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise == nil || exercise.Image == nil || exercise.Image.ObjectKey == "" {
		return "", nil
	}
	return s.assets.PresignGet(ctx, exercise.Image.ObjectKey, storage.DefaultPresignedURLExpiry)
}
