package service

import (
	"alcyxob/fittrack/internal/domain"
	"context"
	"strings"
	"sync"
)

// CatalogCache holds the last fetched exercise list and serves filtered
// views of it. It is refreshed on view activation or pull-to-refresh and
// rescanned in full on every filter call; at catalog scale (tens to low
// hundreds of entries) that needs no index.
type CatalogCache struct {
	mu        sync.RWMutex
	exercises []domain.Exercise
	loaded    bool

	exerciseService ExerciseService
}

// NewCatalogCache creates an empty cache over the given service.
func NewCatalogCache(exerciseService ExerciseService) *CatalogCache {
	return &CatalogCache{exerciseService: exerciseService}
}

// Refresh refetches the whole catalog. On failure the previously cached
// list is kept as-is.
func (c *CatalogCache) Refresh(ctx context.Context) error {
	exercises, err := c.exerciseService.ListExercises(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.exercises = exercises
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Filter returns the cached exercises whose name contains query,
// case-insensitively. An empty query returns the full list unchanged.
// The cache is populated lazily on first use.
func (c *CatalogCache) Filter(ctx context.Context, query string) ([]domain.Exercise, error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if query == "" {
		out := make([]domain.Exercise, len(c.exercises))
		copy(out, c.exercises)
		return out, nil
	}

	needle := strings.ToLower(query)
	filtered := make([]domain.Exercise, 0, len(c.exercises))
	for _, ex := range c.exercises {
		if strings.Contains(strings.ToLower(ex.Name), needle) {
			filtered = append(filtered, ex)
		}
	}
	return filtered, nil
}
