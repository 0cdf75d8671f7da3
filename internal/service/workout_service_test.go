package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/draft"
	"alcyxob/fittrack/internal/prefs"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- fakes ---

type fakeWorkoutRepo struct {
	created   []*domain.Workout
	createErr error
	byID      map[primitive.ObjectID]*domain.Workout
	byUser    map[string][]domain.Workout
	deleteErr error
	deleted   []primitive.ObjectID
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{
		byID:   make(map[primitive.ObjectID]*domain.Workout),
		byUser: make(map[string][]domain.Workout),
	}
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	workout.ID = primitive.NewObjectID()
	f.created = append(f.created, workout)
	return workout.ID, nil
}

func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return w, nil
}

func (f *fakeWorkoutRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Workout, error) {
	return f.byUser[userID], nil
}

func (f *fakeWorkoutRepo) Delete(ctx context.Context, id primitive.ObjectID, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	f := &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
	for _, ex := range exercises {
		f.exercises[ex.ID] = ex
	}
	return f
}

func (f *fakeExerciseRepo) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0, len(f.exercises))
	for _, ex := range f.exercises {
		out = append(out, ex)
	}
	return out, nil
}

func (f *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, ok := f.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (f *fakeExerciseRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, id := range ids {
		if ex, ok := f.exercises[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func newTestDraftManager() *draft.Manager {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return draft.NewManager(prefs.NewMemory(), logger)
}

// --- tests ---

func TestWorkoutService_CompleteWorkout_SanitizesDraft(t *testing.T) {
	catalogID := primitive.NewObjectID()
	workoutRepo := newFakeWorkoutRepo()
	drafts := newTestDraftManager()
	svc := NewWorkoutService(workoutRepo, newFakeExerciseRepo(), drafts)

	store := drafts.ForUser("user-1")
	store.AddExercise(catalogID, "Bench Press")
	store.UpdateExercises(func(exercises []domain.DraftExercise) []domain.DraftExercise {
		exercises[0].Sets = []domain.DraftSet{
			{ID: "local-set-1", Reps: 8, Weight: floatPtr(50), WeightUnit: domain.UnitKg, Completed: true},
		}
		return exercises
	})

	date := time.Date(2025, 7, 28, 18, 30, 0, 0, time.UTC)
	id, err := svc.CompleteWorkout(context.Background(), "user-1", date, 1800)
	require.NoError(t, err)
	require.NotEqual(t, primitive.NilObjectID, id)

	require.Len(t, workoutRepo.created, 1)
	doc := workoutRepo.created[0]
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, date, doc.Date)
	assert.Equal(t, 1800, doc.Duration)

	// Exactly one instance with a reference-typed pointer and one set
	// holding only reps/weight/unit; local ids, completion flags and the
	// cached display name are gone.
	require.Len(t, doc.Exercises, 1)
	assert.Equal(t, catalogID, doc.Exercises[0].ExerciseID)
	require.Len(t, doc.Exercises[0].Sets, 1)
	set := doc.Exercises[0].Sets[0]
	assert.Equal(t, 8, set.Reps)
	require.NotNil(t, set.Weight)
	assert.Equal(t, 50.0, *set.Weight)
	assert.Equal(t, domain.UnitKg, set.WeightUnit)

	// Success clears the draft.
	assert.Empty(t, store.Exercises())
}

func TestWorkoutService_CompleteWorkout_FailurePreservesDraft(t *testing.T) {
	workoutRepo := newFakeWorkoutRepo()
	workoutRepo.createErr = errors.New("store unavailable")
	drafts := newTestDraftManager()
	svc := NewWorkoutService(workoutRepo, newFakeExerciseRepo(), drafts)

	store := drafts.ForUser("user-1")
	store.AddExercise(primitive.NewObjectID(), "Squat")

	_, err := svc.CompleteWorkout(context.Background(), "user-1", time.Now(), 600)
	require.Error(t, err)

	// The draft is untouched so the user can retry.
	assert.Len(t, store.Exercises(), 1)
}

func TestWorkoutService_ListWorkouts_ExpandsReferences(t *testing.T) {
	benchID := primitive.NewObjectID()
	squatID := primitive.NewObjectID()
	exerciseRepo := newFakeExerciseRepo(
		domain.Exercise{ID: benchID, Name: "Bench Press", Description: "Chest press on a flat bench."},
		domain.Exercise{ID: squatID, Name: "Squat", Description: "Barbell back squat."},
	)

	workoutRepo := newFakeWorkoutRepo()
	workoutRepo.byUser["user-1"] = []domain.Workout{
		{
			ID:       primitive.NewObjectID(),
			UserID:   "user-1",
			Duration: 1200,
			Exercises: []domain.ExerciseInstance{
				{ExerciseID: benchID, Sets: []domain.WorkoutSet{{Reps: 8}}},
				{ExerciseID: squatID, Sets: []domain.WorkoutSet{{Reps: 5}}},
			},
		},
	}

	svc := NewWorkoutService(workoutRepo, exerciseRepo, newTestDraftManager())
	views, err := svc.ListWorkouts(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Exercises, 2)

	assert.Equal(t, "Bench Press", views[0].Exercises[0].Exercise.Name)
	assert.Equal(t, "Squat", views[0].Exercises[1].Exercise.Name)
	// The list projection expands {id, name} only.
	assert.Empty(t, views[0].Exercises[0].Exercise.Description)
}

func TestWorkoutService_GetWorkout_IncludesDescriptions(t *testing.T) {
	benchID := primitive.NewObjectID()
	missingID := primitive.NewObjectID()
	exerciseRepo := newFakeExerciseRepo(
		domain.Exercise{ID: benchID, Name: "Bench Press", Description: "Chest press on a flat bench."},
	)

	workoutID := primitive.NewObjectID()
	workoutRepo := newFakeWorkoutRepo()
	workoutRepo.byID[workoutID] = &domain.Workout{
		ID:       workoutID,
		UserID:   "user-1",
		Duration: 900,
		Exercises: []domain.ExerciseInstance{
			{ExerciseID: benchID, Sets: []domain.WorkoutSet{{Reps: 10}}},
			{ExerciseID: missingID, Sets: []domain.WorkoutSet{{Reps: 12}}},
		},
	}

	svc := NewWorkoutService(workoutRepo, exerciseRepo, newTestDraftManager())
	view, err := svc.GetWorkout(context.Background(), "user-1", workoutID)
	require.NoError(t, err)
	require.Len(t, view.Exercises, 2)

	assert.Equal(t, "Chest press on a flat bench.", view.Exercises[0].Exercise.Description)

	// A reference deleted from the catalog projects empty, not an error.
	assert.Equal(t, missingID, view.Exercises[1].Exercise.ID)
	assert.Empty(t, view.Exercises[1].Exercise.Name)

	// Another user's record reads as not found.
	_, err = svc.GetWorkout(context.Background(), "user-2", workoutID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutService_GetWorkout_NotFound(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutRepo(), newFakeExerciseRepo(), newTestDraftManager())
	_, err := svc.GetWorkout(context.Background(), "user-1", primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutService_DeleteWorkout(t *testing.T) {
	workoutRepo := newFakeWorkoutRepo()
	svc := NewWorkoutService(workoutRepo, newFakeExerciseRepo(), newTestDraftManager())

	id := primitive.NewObjectID()
	require.NoError(t, svc.DeleteWorkout(context.Background(), "user-1", id))
	assert.Equal(t, []primitive.ObjectID{id}, workoutRepo.deleted)

	workoutRepo.deleteErr = repository.ErrNotFound
	err := svc.DeleteWorkout(context.Background(), "user-1", primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}
