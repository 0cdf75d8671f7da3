package prefs

import (
	"alcyxob/fittrack/internal/domain"
	"sync"
)

// memoryStore is an in-memory Store. Tests inject it in place of the
// badger-backed one; it also serves deployments that do not care about
// preference persistence across restarts.
type memoryStore struct {
	mu    sync.Mutex
	units map[string]domain.WeightUnit
	// failWrites makes SaveWeightUnit return saveErr; used to exercise
	// the best-effort persistence contract in tests.
	failWrites bool
	saveErr    error
}

// NewMemory returns an empty in-memory preference store.
func NewMemory() Store {
	return &memoryStore{units: make(map[string]domain.WeightUnit)}
}

// NewFailingMemory returns a store whose writes always fail with err.
func NewFailingMemory(err error) Store {
	return &memoryStore{units: make(map[string]domain.WeightUnit), failWrites: true, saveErr: err}
}

func (s *memoryStore) SaveWeightUnit(userID string, unit domain.WeightUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return s.saveErr
	}
	s.units[userID] = unit
	return nil
}

func (s *memoryStore) LoadWeightUnit(userID string) (domain.WeightUnit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	unit, ok := s.units[userID]
	return unit, ok, nil
}

func (s *memoryStore) Close() error {
	return nil
}
