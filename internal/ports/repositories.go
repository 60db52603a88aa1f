package ports

import (
	"context"
	"time"

	"github.com/studywell/dashboard/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string, at time.Time) error
	UpdateDueDate(ctx context.Context, id string, due time.Time, at time.Time) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
}

// HealthRepository defines the interface for daily health records.
// Records are keyed by the civil-day instant.
type HealthRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*entities.DailyHealthRecord, error)
	// Upsert creates the record for its date or overwrites condition and note
	// of the existing one. A lost insert race returns entities.ErrDuplicateDay.
	Upsert(ctx context.Context, record *entities.DailyHealthRecord) error
	ListSince(ctx context.Context, from time.Time) ([]entities.DailyHealthRecord, error)
}

// MoodRepository defines the interface for the append-only mood log
type MoodRepository interface {
	Create(ctx context.Context, entry *entities.MoodLogEntry) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]entities.MoodLogEntry, error)
	// LatestSince returns the newest entry at or after since, or
	// entities.ErrRecordNotFound.
	LatestSince(ctx context.Context, since time.Time) (*entities.MoodLogEntry, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Get decodes the cached value into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// TaskFilter narrows a task listing
type TaskFilter struct {
	IsDone *bool
	Limit  int
}

// WeatherProvider is the upstream forecast and reverse-geocoding service
type WeatherProvider interface {
	Forecast(ctx context.Context, lat, lon string) ([]byte, error)
	PlaceLabel(ctx context.Context, lat, lon string) (string, error)
}
