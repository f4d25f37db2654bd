package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/models"
)

// ActivityStore is the persistence contract shared by every backend.
type ActivityStore interface {
	Get(ctx context.Context, name string) (*models.Activity, error)
	List(ctx context.Context) ([]models.Activity, error)
	AddParticipant(ctx context.Context, name, email string) (*models.Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (*models.Activity, error)
	Ping(ctx context.Context) error
}

// catalogSnapshotPattern matches cached list and day snapshots but not the generation counter.
const catalogSnapshotPattern = "activities:g[0-9]*"

// CatalogService answers read queries over the activity catalog.
type CatalogService struct {
	store  ActivityStore
	cache  *CacheService
	logger *zap.Logger
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(store ActivityStore, cache *CacheService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{store: store, cache: cache, logger: logger}
}

// List returns the activities matching filter and whether the answer came from cache.
func (s *CatalogService) List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, bool, error) {
	generation, cacheable := s.generation(ctx)
	key := fmt.Sprintf("activities:g%d:list:%s", generation, filter.CacheKey())

	if cacheable {
		var cached []models.Activity
		if s.readCache(ctx, key, &cached) {
			return cached, true, nil
		}
	}

	activities, err := s.store.List(ctx)
	if err != nil {
		return nil, false, mapStoreError(err, "")
	}
	filtered := FilterActivities(activities, filter)

	if cacheable {
		s.writeCache(ctx, key, filtered)
	}
	return filtered, false, nil
}

// Get returns one activity by name, always from the store.
func (s *CatalogService) Get(ctx context.Context, name string) (*models.Activity, error) {
	activity, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, mapStoreError(err, name)
	}
	return activity, nil
}

// Days lists the weekdays on which any activity meets.
func (s *CatalogService) Days(ctx context.Context) ([]models.Weekday, bool, error) {
	generation, cacheable := s.generation(ctx)
	key := fmt.Sprintf("activities:g%d:days", generation)

	if cacheable {
		var cached []models.Weekday
		if s.readCache(ctx, key, &cached) {
			return cached, true, nil
		}
	}

	activities, err := s.store.List(ctx)
	if err != nil {
		return nil, false, mapStoreError(err, "")
	}
	days := DistinctDays(activities)

	if cacheable {
		s.writeCache(ctx, key, days)
	}
	return days, false, nil
}

// ResetCache moves the catalog to a new generation and purges snapshots cached
// under older ones. Used after the catalog is reseeded outside a roster mutation.
func (s *CatalogService) ResetCache(ctx context.Context) error {
	if !s.cache.Enabled() {
		return nil
	}
	if _, err := s.cache.BumpGeneration(ctx); err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, catalogSnapshotPattern)
}

// Ping reports whether the underlying store is reachable.
func (s *CatalogService) Ping(ctx context.Context) error {
	return mapStoreError(s.store.Ping(ctx), "")
}

// generation reads the catalog generation. Entries are only cached when the
// generation is known, so a cache outage never pins a stale snapshot.
func (s *CatalogService) generation(ctx context.Context) (int64, bool) {
	if !s.cache.Enabled() {
		return 0, false
	}
	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("catalog generation unavailable", zap.Error(err))
		return 0, false
	}
	return generation, true
}

func (s *CatalogService) readCache(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		return false
	}
	return hit
}

func (s *CatalogService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, 0); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
