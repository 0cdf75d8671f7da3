package draft

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/prefs"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds the workout a user is currently building: an ordered list of
// exercise entries, each with its ordered sets, plus the weight-unit
// preference. Everything except the unit lives in memory only and is lost
// on restart or reset; the unit is written through the prefs port.
type Store struct {
	mu        sync.Mutex
	userID    string
	exercises []domain.DraftExercise
	unit      domain.WeightUnit

	prefs  prefs.Store
	logger *logrus.Entry
}

// NewStore creates a draft store for one user, hydrating the weight unit
// from the preference store. A missing or failing read falls back to the
// default unit; the draft starts empty either way.
func NewStore(userID string, prefStore prefs.Store, logger *logrus.Logger) *Store {
	s := &Store{
		userID: userID,
		unit:   domain.DefaultWeightUnit,
		prefs:  prefStore,
		logger: logger.WithField("component", "draft").WithField("userId", userID),
	}

	unit, ok, err := prefStore.LoadWeightUnit(userID)
	if err != nil {
		s.logger.WithError(err).Warn("failed to load weight unit preference")
	} else if ok {
		s.unit = unit
	}
	return s
}

// AddExercise appends a new entry referencing the given catalog exercise,
// with a freshly generated local id, the display name cached as passed in,
// and no sets yet. Entries are never deduplicated; adding the same catalog
// exercise twice yields two independent entries.
func (s *Store) AddExercise(catalogID primitive.ObjectID, name string) domain.DraftExercise {
	entry := domain.DraftExercise{
		ID:         uuid.NewString(),
		ExerciseID: catalogID,
		Name:       name,
		Sets:       []domain.DraftSet{},
	}

	s.mu.Lock()
	s.exercises = append(s.exercises, entry)
	s.mu.Unlock()
	return entry
}

// ReplaceExercises swaps in a new exercise list wholesale.
func (s *Store) ReplaceExercises(next []domain.DraftExercise) {
	s.mu.Lock()
	s.exercises = cloneExercises(next)
	s.mu.Unlock()
}

// UpdateExercises applies fn to the current list and installs the result.
// This is the mutation primitive all set-level edits go through: adding,
// removing or editing a set, and reordering entries. fn receives a copy,
// so it may mutate its argument freely.
func (s *Store) UpdateExercises(fn func([]domain.DraftExercise) []domain.DraftExercise) {
	s.mu.Lock()
	s.exercises = cloneExercises(fn(cloneExercises(s.exercises)))
	s.mu.Unlock()
}

// SetWeightUnit updates the preference immediately in memory and kicks off
// a best-effort persistence write. A failed write is logged and dropped;
// the in-memory value stays authoritative for this process lifetime.
func (s *Store) SetWeightUnit(unit domain.WeightUnit) {
	if !unit.IsValid() {
		return
	}

	s.mu.Lock()
	s.unit = unit
	s.mu.Unlock()

	go func() {
		if err := s.prefs.SaveWeightUnit(s.userID, unit); err != nil {
			s.logger.WithError(err).Warn("failed to persist weight unit preference")
		}
	}()
}

// Reset clears the exercise list. The weight unit is left untouched; it is
// a preference, not part of the abandoned draft.
func (s *Store) Reset() {
	s.mu.Lock()
	s.exercises = nil
	s.mu.Unlock()
}

// Exercises returns a snapshot copy of the current draft. Callers may
// mutate the returned slice without affecting the store.
func (s *Store) Exercises() []domain.DraftExercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneExercises(s.exercises)
}

// WeightUnit returns the current unit preference, the value new sets
// default to.
func (s *Store) WeightUnit() domain.WeightUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unit
}

// cloneExercises deep-copies entries so snapshots and update callbacks
// cannot alias the store's own set slices.
func cloneExercises(exercises []domain.DraftExercise) []domain.DraftExercise {
	if exercises == nil {
		return nil
	}
	out := make([]domain.DraftExercise, len(exercises))
	for i, ex := range exercises {
		out[i] = ex
		out[i].Sets = make([]domain.DraftSet, len(ex.Sets))
		copy(out[i].Sets, ex.Sets)
	}
	return out
}
