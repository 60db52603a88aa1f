package services

import (
	"time"

	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/ports"
)

// Options tunes the caching and weather defaults of the service set
type Options struct {
	ViewTTL    time.Duration
	WeatherTTL time.Duration
	DefaultLat string
	DefaultLon string
}

// Services is the full application service set over one storage backend
type Services struct {
	Views     *ViewCache
	Tasks     *TaskService
	Wellness  *WellnessService
	History   *HistoryService
	Dashboard *DashboardService
	Digest    *DigestService
	Weather   *WeatherService
}

// New wires every service against the given repositories and cache
func New(tasks ports.TaskRepository, health ports.HealthRepository, moods ports.MoodRepository, cache ports.CacheRepository, weather ports.WeatherProvider, opts Options, m *metrics.Metrics, logger *logger.Logger) *Services {
	views := NewViewCache(cache, opts.ViewTTL, m, logger)
	dashboard := NewDashboardService(tasks, health, moods, views, logger)

	return &Services{
		Views:     views,
		Tasks:     NewTaskService(tasks, health, moods, views, m, logger),
		Wellness:  NewWellnessService(health, moods, views, m, logger),
		History:   NewHistoryService(health, moods, logger),
		Dashboard: dashboard,
		Digest:    NewDigestService(dashboard, views, m, logger),
		Weather:   NewWeatherService(weather, views, opts.WeatherTTL, opts.DefaultLat, opts.DefaultLon, m, logger),
	}
}
