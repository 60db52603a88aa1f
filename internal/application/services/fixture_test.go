package services

import (
	"testing"
	"time"

	"github.com/studywell/dashboard/internal/adapters/cache"
	"github.com/studywell/dashboard/internal/adapters/repository"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/ports"
)

// 2025-06-01 12:00 at UTC+9
var fixedNow = time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)

type fixture struct {
	now       time.Time
	taskRepo  ports.TaskRepository
	health    ports.HealthRepository
	moods     ports.MoodRepository
	cache     *cache.MemoryCache
	views     *ViewCache
	metrics   *metrics.Metrics
	tasks     *TaskService
	wellness  *WellnessService
	history   *HistoryService
	dashboard *DashboardService
	digest    *DigestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemoryStore()
	f := &fixture{
		now:      fixedNow,
		taskRepo: repository.NewMemoryTaskRepository(store),
		health:   repository.NewMemoryHealthRepository(store),
		moods:    repository.NewMemoryMoodRepository(store),
		cache:    cache.NewMemoryCache(),
		metrics:  metrics.New(),
	}
	log := logger.NewNop()
	clock := func() time.Time { return f.now }

	f.views = NewViewCache(f.cache, 10*time.Minute, f.metrics, log)

	f.tasks = NewTaskService(f.taskRepo, f.health, f.moods, f.views, f.metrics, log)
	f.tasks.now = clock
	f.wellness = NewWellnessService(f.health, f.moods, f.views, f.metrics, log)
	f.wellness.now = clock
	f.history = NewHistoryService(f.health, f.moods, log)
	f.history.now = clock
	f.dashboard = NewDashboardService(f.taskRepo, f.health, f.moods, f.views, log)
	f.dashboard.now = clock
	f.digest = NewDigestService(f.dashboard, f.views, f.metrics, log)

	return f
}

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

func boolp(b bool) *bool { return &b }

func timep(t time.Time) *time.Time { return &t }
