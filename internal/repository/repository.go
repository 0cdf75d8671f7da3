package repository

import (
	"alcyxob/fittrack/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository defines read access to the exercise catalog.
// The catalog is maintained by external content tooling; this
// application never writes it.
type ExerciseRepository interface {
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByIDs fetches the catalog entries for a batch of references in one
	// round trip; missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
}

// WorkoutRepository defines the interface for interacting with persisted
// workout records.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// GetByUserID returns all workouts owned by the user, newest first.
	GetByUserID(ctx context.Context, userID string) ([]domain.Workout, error)
	// Delete removes the whole record; the userID filter ensures a user can
	// only delete their own workouts.
	Delete(ctx context.Context, id primitive.ObjectID, userID string) error
}
