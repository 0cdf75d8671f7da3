package draft

import (
	"alcyxob/fittrack/internal/prefs"
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager hands out the per-user draft store, creating it on first use.
// The mobile client held a single draft per device; server-side that
// becomes one draft per authenticated user.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	prefs  prefs.Store
	logger *logrus.Logger
}

// NewManager creates a draft manager backed by the given preference store.
func NewManager(prefStore prefs.Store, logger *logrus.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		prefs:  prefStore,
		logger: logger,
	}
}

// ForUser returns the user's draft store, creating and hydrating it on
// first access.
func (m *Manager) ForUser(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := NewStore(userID, m.prefs, m.logger)
	m.stores[userID] = s
	return s
}
