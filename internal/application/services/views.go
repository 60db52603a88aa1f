package services

import (
	"context"
	"sync"
	"time"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/ports"
)

// Clock returns the current instant. Services take one so tests can pin time.
type Clock func() time.Time

// SystemClock is the wall clock at microsecond precision, the finest both SQL
// backends keep.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

const (
	dashboardKey = "view:dashboard"
	taskListKey  = "view:task-list:"
)

var viewKeys = map[entities.View][]string{
	entities.ViewDashboard: {dashboardKey},
	entities.ViewTaskList:  {taskListKey + "all", taskListKey + "open", taskListKey + "done"},
}

// ViewCache stores pre-computed views and drops them when the data behind
// them changes. Cache failures are logged and never fail the caller.
//
// Every view carries a generation that Invalidate bumps. A value built from
// a read taken at generation g is only stored while the view is still at g,
// so a build that raced a mutation never outlives it.
type ViewCache struct {
	cache   ports.CacheRepository
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *logger.Logger

	mu          sync.Mutex
	generations map[entities.View]uint64
}

// NewViewCache creates a view cache over any CacheRepository
func NewViewCache(cache ports.CacheRepository, ttl time.Duration, m *metrics.Metrics, logger *logger.Logger) *ViewCache {
	return &ViewCache{
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  logger.WithComponent("view_cache"),

		generations: make(map[entities.View]uint64),
	}
}

// Invalidate drops every cached key belonging to the given views
func (v *ViewCache) Invalidate(ctx context.Context, views ...entities.View) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, view := range views {
		v.generations[view]++
		if err := v.cache.Delete(ctx, viewKeys[view]...); err != nil {
			v.logger.Warnw("Failed to invalidate view", "view", view, "error", err)
			continue
		}
		v.metrics.ViewInvalidated(string(view))
	}
}

// generation returns the current generation of view. Take it before reading
// the data a cached value is built from.
func (v *ViewCache) generation(view entities.View) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generations[view]
}

// load decodes the cached value of key into dest. It also returns the
// generation observed before the lookup, for a later store on a miss.
func (v *ViewCache) load(ctx context.Context, view entities.View, key string, dest interface{}) (uint64, bool) {
	gen := v.generation(view)

	hit, err := v.cache.Get(ctx, key, dest)
	if err != nil {
		v.logger.Warnw("Failed to read cached view", "key", key, "error", err)
		hit = false
	}
	v.metrics.CacheLookup(string(view), hit)
	return gen, hit
}

// store caches value under key unless view was invalidated after gen
func (v *ViewCache) store(ctx context.Context, view entities.View, gen uint64, key string, value interface{}, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = v.ttl
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.generations[view] != gen {
		v.logger.Debugw("Skipped caching stale view", "view", view, "key", key)
		return false
	}
	if err := v.cache.Set(ctx, key, value, ttl); err != nil {
		v.logger.Warnw("Failed to cache view", "key", key, "error", err)
		return false
	}
	return true
}

// Ping checks the cache backend
func (v *ViewCache) Ping(ctx context.Context) error {
	return v.cache.Ping(ctx)
}
