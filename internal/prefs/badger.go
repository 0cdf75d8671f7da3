package prefs

import (
	"alcyxob/fittrack/internal/domain"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
)

// storageNamespace matches the storage key the mobile client used for its
// persisted workout state, so entries stay recognizable in the store.
const storageNamespace = "workout-storage"

// badgerStore implements Store on top of an embedded Badger database.
type badgerStore struct {
	db *badger.DB
}

// Open opens (or creates) the preference database under dir.
func Open(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	opts := badger.DefaultOptions(filepath.Join(dir, "prefs")).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open prefs database: %w", err)
	}
	return &badgerStore{db: db}, nil
}

// OpenInMemory opens an ephemeral store. Used by tests.
func OpenInMemory() (Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &badgerStore{db: db}, nil
}

func prefKey(userID string) []byte {
	return []byte(storageNamespace + "/" + userID + "/weightUnit")
}

func (s *badgerStore) SaveWeightUnit(userID string, unit domain.WeightUnit) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(prefKey(userID), []byte(unit))
	})
}

func (s *badgerStore) LoadWeightUnit(userID string) (domain.WeightUnit, bool, error) {
	var unit domain.WeightUnit
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(prefKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			unit = domain.WeightUnit(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !unit.IsValid() {
		// A corrupt or legacy value; treat as unset rather than erroring.
		return "", false, nil
	}
	return unit, true, nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
