package prefs

import "alcyxob/fittrack/internal/domain"

// Store is the durable key-value boundary for the persisted subset of
// draft state. Exactly one namespaced entry per user is ever written: the
// weight-unit preference. The draft itself is never persisted.
type Store interface {
	// SaveWeightUnit writes the preference. Callers treat failures as
	// best-effort; the in-memory value stays authoritative.
	SaveWeightUnit(userID string, unit domain.WeightUnit) error
	// LoadWeightUnit reads the preference back. The second return is false
	// when no preference was ever persisted for this user.
	LoadWeightUnit(userID string) (domain.WeightUnit, bool, error)
	Close() error
}
