package draft

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/prefs"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestStore_AddExercise(t *testing.T) {
	store := NewStore("user-1", prefs.NewMemory(), newTestLogger())
	catalogID := primitive.NewObjectID()

	entry := store.AddExercise(catalogID, "Push-Up")
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, catalogID, entry.ExerciseID)
	assert.Equal(t, "Push-Up", entry.Name)
	assert.Empty(t, entry.Sets)

	exercises := store.Exercises()
	require.Len(t, exercises, 1)

	// Repeats are valid and become independent entries.
	second := store.AddExercise(catalogID, "Push-Up")
	assert.NotEqual(t, entry.ID, second.ID)
	assert.Len(t, store.Exercises(), 2)
}

func TestStore_AddExercise_DoesNotMutateExistingEntries(t *testing.T) {
	store := NewStore("user-1", prefs.NewMemory(), newTestLogger())
	first := store.AddExercise(primitive.NewObjectID(), "Squat")

	store.UpdateExercises(func(exercises []domain.DraftExercise) []domain.DraftExercise {
		exercises[0].Sets = append(exercises[0].Sets, domain.DraftSet{ID: "s1", Reps: 5, WeightUnit: domain.UnitKg})
		return exercises
	})
	before := store.Exercises()
	require.Len(t, before[0].Sets, 1)

	store.AddExercise(primitive.NewObjectID(), "Deadlift")

	after := store.Exercises()
	require.Len(t, after, 2)
	assert.Equal(t, first.ID, after[0].ID)
	assert.Len(t, after[0].Sets, 1, "adding an exercise must not touch existing sets")
}

func TestStore_UpdateExercises_IsIsolatedFromSnapshots(t *testing.T) {
	store := NewStore("user-1", prefs.NewMemory(), newTestLogger())
	store.AddExercise(primitive.NewObjectID(), "Bench Press")
	store.UpdateExercises(func(exercises []domain.DraftExercise) []domain.DraftExercise {
		exercises[0].Sets = []domain.DraftSet{{ID: "s1", Reps: 8, WeightUnit: domain.UnitLbs}}
		return exercises
	})

	snapshot := store.Exercises()
	snapshot[0].Sets[0].Reps = 99
	snapshot[0].Name = "changed"

	fresh := store.Exercises()
	assert.Equal(t, 8, fresh[0].Sets[0].Reps)
	assert.Equal(t, "Bench Press", fresh[0].Name)
}

func TestStore_ReplaceExercises(t *testing.T) {
	store := NewStore("user-1", prefs.NewMemory(), newTestLogger())
	store.AddExercise(primitive.NewObjectID(), "Squat")

	next := []domain.DraftExercise{
		{ID: "a", ExerciseID: primitive.NewObjectID(), Name: "Lunge", Sets: []domain.DraftSet{}},
		{ID: "b", ExerciseID: primitive.NewObjectID(), Name: "Plank", Sets: []domain.DraftSet{}},
	}
	store.ReplaceExercises(next)

	exercises := store.Exercises()
	require.Len(t, exercises, 2)
	assert.Equal(t, "Lunge", exercises[0].Name)
	assert.Equal(t, "Plank", exercises[1].Name)
}

func TestStore_Reset_PreservesWeightUnit(t *testing.T) {
	store := NewStore("user-1", prefs.NewMemory(), newTestLogger())
	store.AddExercise(primitive.NewObjectID(), "Squat")
	store.SetWeightUnit(domain.UnitKg)

	store.Reset()

	assert.Empty(t, store.Exercises())
	assert.Equal(t, domain.UnitKg, store.WeightUnit())
}

func TestStore_SetWeightUnit_PersistsBestEffort(t *testing.T) {
	prefStore := prefs.NewMemory()
	store := NewStore("user-1", prefStore, newTestLogger())

	store.SetWeightUnit(domain.UnitKg)
	assert.Equal(t, domain.UnitKg, store.WeightUnit())

	// The durable write happens in the background.
	require.Eventually(t, func() bool {
		unit, ok, err := prefStore.LoadWeightUnit("user-1")
		return err == nil && ok && unit == domain.UnitKg
	}, time.Second, 10*time.Millisecond)
}

func TestStore_SetWeightUnit_FailedWriteKeepsMemoryAuthoritative(t *testing.T) {
	prefStore := prefs.NewFailingMemory(errors.New("disk full"))
	store := NewStore("user-1", prefStore, newTestLogger())

	store.SetWeightUnit(domain.UnitKg)

	// The in-memory value changes immediately and is never rolled back.
	assert.Equal(t, domain.UnitKg, store.WeightUnit())
}

func TestStore_IgnoresInvalidWeightUnit(t *testing.T) {
	store := NewStore("user-1", prefs.NewMemory(), newTestLogger())
	store.SetWeightUnit(domain.WeightUnit("stones"))
	assert.Equal(t, domain.DefaultWeightUnit, store.WeightUnit())
}

func TestStore_HydratesWeightUnitFromPrefs(t *testing.T) {
	prefStore := prefs.NewMemory()
	require.NoError(t, prefStore.SaveWeightUnit("user-1", domain.UnitKg))

	store := NewStore("user-1", prefStore, newTestLogger())
	assert.Equal(t, domain.UnitKg, store.WeightUnit())

	// The draft itself is never persisted; a fresh store starts empty.
	assert.Empty(t, store.Exercises())

	// Unknown users get the default.
	other := NewStore("user-2", prefStore, newTestLogger())
	assert.Equal(t, domain.DefaultWeightUnit, other.WeightUnit())
}

func TestManager_ReturnsSameStorePerUser(t *testing.T) {
	manager := NewManager(prefs.NewMemory(), newTestLogger())

	a := manager.ForUser("user-1")
	b := manager.ForUser("user-1")
	c := manager.ForUser("user-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
