package service

import (
	"alcyxob/fittrack/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeExerciseService struct {
	exercises []domain.Exercise
	err       error
	calls     int
}

func (f *fakeExerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.exercises, nil
}

func (f *fakeExerciseService) GetExerciseByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return nil, ErrExerciseNotFound
}

func (f *fakeExerciseService) ResolveImageURL(ctx context.Context, exercise *domain.Exercise) (string, error) {
	return "", nil
}

func catalogFixture() []domain.Exercise {
	return []domain.Exercise{
		{ID: primitive.NewObjectID(), Name: "Push-Up"},
		{ID: primitive.NewObjectID(), Name: "Squat"},
		{ID: primitive.NewObjectID(), Name: "Shoulder Push Press"},
	}
}

func TestCatalogCache_Filter_EmptyQueryReturnsAll(t *testing.T) {
	svc := &fakeExerciseService{exercises: catalogFixture()}
	cache := NewCatalogCache(svc)

	got, err := cache.Filter(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Push-Up", got[0].Name)
}

func TestCatalogCache_Filter_CaseInsensitiveSubstring(t *testing.T) {
	svc := &fakeExerciseService{exercises: catalogFixture()}
	cache := NewCatalogCache(svc)

	got, err := cache.Filter(context.Background(), "PUSH")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Push-Up", got[0].Name)
	assert.Equal(t, "Shoulder Push Press", got[1].Name)

	got, err = cache.Filter(context.Background(), "deadlift")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogCache_LazyLoadsOnce(t *testing.T) {
	svc := &fakeExerciseService{exercises: catalogFixture()}
	cache := NewCatalogCache(svc)

	_, err := cache.Filter(context.Background(), "")
	require.NoError(t, err)
	_, err = cache.Filter(context.Background(), "squat")
	require.NoError(t, err)

	assert.Equal(t, 1, svc.calls)
}

func TestCatalogCache_RefreshFailureKeepsCache(t *testing.T) {
	svc := &fakeExerciseService{exercises: catalogFixture()}
	cache := NewCatalogCache(svc)

	_, err := cache.Filter(context.Background(), "")
	require.NoError(t, err)

	svc.err = errors.New("database unavailable")
	require.Error(t, cache.Refresh(context.Background()))

	// The previously cached list still serves.
	got, err := cache.Filter(context.Background(), "squat")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
