package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/draft"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
)

// SubmittedSet is one set of a workout submission: exactly the fields the
// store keeps, nothing local.
type SubmittedSet struct {
	Reps       int
	Weight     *float64
	WeightUnit domain.WeightUnit
}

// SubmittedExercise is one exercise-instance of a submission, referencing
// the catalog by id only.
type SubmittedExercise struct {
	ExerciseID primitive.ObjectID
	Sets       []SubmittedSet
}

// WorkoutSubmission is a completed draft shaped for the store.
type WorkoutSubmission struct {
	UserID    string
	Date      time.Time
	Duration  int
	Exercises []SubmittedExercise
}

// ExerciseRef is an expanded catalog reference inside a workout read.
// Description is only populated by the single-record query.
type ExerciseRef struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
}

// ProjectedInstance is an exercise-instance with its reference expanded
// for display.
type ProjectedInstance struct {
	Exercise ExerciseRef         `json:"exercise"`
	Sets     []domain.WorkoutSet `json:"sets"`
}

// WorkoutView is a workout record as the history and detail screens
// consume it: references expanded, order preserved.
type WorkoutView struct {
	ID        primitive.ObjectID  `json:"id"`
	Date      time.Time           `json:"date"`
	Duration  int                 `json:"duration"`
	Exercises []ProjectedInstance `json:"exercises"`
}

// WorkoutService covers the write side (submission, deletion) and the read
// side (list/detail with reference expansion) of workout records.
type WorkoutService interface {
	// CompleteWorkout submits the user's current draft as one workout
	// record. On success the draft is cleared; on failure it is preserved
	// unchanged so the user may retry.
	CompleteWorkout(ctx context.Context, userID string, date time.Time, durationSec int) (primitive.ObjectID, error)
	// SaveWorkout persists an already-shaped submission.
	SaveWorkout(ctx context.Context, submission WorkoutSubmission) (primitive.ObjectID, error)
	DeleteWorkout(ctx context.Context, userID string, workoutID primitive.ObjectID) error
	ListWorkouts(ctx context.Context, userID string) ([]WorkoutView, error)
	GetWorkout(ctx context.Context, userID string, workoutID primitive.ObjectID) (*WorkoutView, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	drafts       *draft.Manager
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository, drafts *draft.Manager) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		drafts:       drafts,
	}
}

// CompleteWorkout shapes the draft into a submission, dropping every
// local-only field (draft ids, completion flags, cached display names),
// and persists it atomically.
func (s *workoutService) CompleteWorkout(ctx context.Context, userID string, date time.Time, durationSec int) (primitive.ObjectID, error) {
	store := s.drafts.ForUser(userID)

	submission := WorkoutSubmission{
		UserID:   userID,
		Date:     date,
		Duration: durationSec,
	}
	for _, entry := range store.Exercises() {
		instance := SubmittedExercise{ExerciseID: entry.ExerciseID}
		for _, set := range entry.Sets {
			instance.Sets = append(instance.Sets, SubmittedSet{
				Reps:       set.Reps,
				Weight:     set.Weight,
				WeightUnit: set.WeightUnit,
			})
		}
		submission.Exercises = append(submission.Exercises, instance)
	}

	id, err := s.SaveWorkout(ctx, submission)
	if err != nil {
		return primitive.NilObjectID, err
	}

	store.Reset()
	return id, nil
}

// SaveWorkout sanitizes the submission into the store document shape and
// issues the single create call. Either the whole record is created and an
// identity returned, or nothing is persisted.
func (s *workoutService) SaveWorkout(ctx context.Context, submission WorkoutSubmission) (primitive.ObjectID, error) {
	doc := &domain.Workout{
		UserID:    submission.UserID,
		Date:      submission.Date,
		Duration:  submission.Duration,
		Exercises: make([]domain.ExerciseInstance, 0, len(submission.Exercises)),
	}
	for _, ex := range submission.Exercises {
		instance := domain.ExerciseInstance{
			ExerciseID: ex.ExerciseID,
			Sets:       make([]domain.WorkoutSet, 0, len(ex.Sets)),
		}
		for _, set := range ex.Sets {
			instance.Sets = append(instance.Sets, domain.WorkoutSet{
				Reps:       set.Reps,
				Weight:     set.Weight,
				WeightUnit: set.WeightUnit,
			})
		}
		doc.Exercises = append(doc.Exercises, instance)
	}

	return s.workoutRepo.Create(ctx, doc)
}

// DeleteWorkout removes one whole record owned by the user.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID string, workoutID primitive.ObjectID) error {
	err := s.workoutRepo.Delete(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// ListWorkouts returns the user's history, newest first, with each
// catalog reference expanded to {id, name}.
func (s *workoutService) ListWorkouts(ctx context.Context, userID string) ([]WorkoutView, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	refs, err := s.materializeRefs(ctx, workouts)
	if err != nil {
		return nil, err
	}

	views := make([]WorkoutView, 0, len(workouts))
	for i := range workouts {
		views = append(views, projectWorkout(&workouts[i], refs, false))
	}
	return views, nil
}

// GetWorkout returns one record with full expansion (id, name,
// description) per exercise. A record owned by another user reads as
// not found.
func (s *workoutService) GetWorkout(ctx context.Context, userID string, workoutID primitive.ObjectID) (*WorkoutView, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutNotFound
	}

	refs, err := s.materializeRefs(ctx, []domain.Workout{*workout})
	if err != nil {
		return nil, err
	}

	view := projectWorkout(workout, refs, true)
	return &view, nil
}

// materializeRefs batch-fetches every catalog exercise the given workouts
// reference. This is the explicit join step: the store holds ids only and
// display fields are recomputed here at read time.
func (s *workoutService) materializeRefs(ctx context.Context, workouts []domain.Workout) (map[primitive.ObjectID]domain.Exercise, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, w := range workouts {
		for _, instance := range w.Exercises {
			if _, ok := seen[instance.ExerciseID]; ok {
				continue
			}
			seen[instance.ExerciseID] = struct{}{}
			ids = append(ids, instance.ExerciseID)
		}
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	refs := make(map[primitive.ObjectID]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		refs[ex.ID] = ex
	}
	return refs, nil
}

// projectWorkout expands one record against the materialized references.
// A reference missing from the catalog (deleted exercise) projects with an
// empty name rather than failing the whole read.
func projectWorkout(w *domain.Workout, refs map[primitive.ObjectID]domain.Exercise, withDescription bool) WorkoutView {
	view := WorkoutView{
		ID:        w.ID,
		Date:      w.Date,
		Duration:  w.Duration,
		Exercises: make([]ProjectedInstance, 0, len(w.Exercises)),
	}
	for _, instance := range w.Exercises {
		ref := ExerciseRef{ID: instance.ExerciseID}
		if ex, ok := refs[instance.ExerciseID]; ok {
			ref.Name = ex.Name
			if withDescription {
				ref.Description = ex.Description
			}
		}
		sets := make([]domain.WorkoutSet, len(instance.Sets))
		copy(sets, instance.Sets)
		view.Exercises = append(view.Exercises, ProjectedInstance{Exercise: ref, Sets: sets})
	}
	return view
}
