package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/history"
	"github.com/studywell/dashboard/internal/domain/scoring"
	"github.com/studywell/dashboard/internal/domain/wellness"
)

// TaskService interface for task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id string) (*entities.Task, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string) error
	SnoozeTask(ctx context.Context, id string, days *int) error
	ListTasks(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	TopTasks(ctx context.Context, n int) ([]ScoredTask, error)
}

// WellnessService interface for health and mood ingestion
type WellnessService interface {
	SubmitHealth(ctx context.Context, req SubmitHealthRequest) (*entities.DailyHealthRecord, error)
	SubmitMood(ctx context.Context, req SubmitMoodRequest) (*entities.MoodLogEntry, error)
}

// HistoryService interface for the per-day history view
type HistoryService interface {
	History(ctx context.Context) (*HistoryView, error)
}

// DashboardService interface for the landing view
type DashboardService interface {
	Dashboard(ctx context.Context) (*DashboardView, error)
}

// WeatherService interface for the forecast proxy
type WeatherService interface {
	Forecast(ctx context.Context, lat, lon string) (*WeatherReport, error)
}

// Request/Response Types

// Task related types
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	EstimateMin *int       `json:"estimateMin"`
	Importance  *int       `json:"importance"`
}

// UpdateTaskRequest is a full replacement. A nil DueDate clears the
// deadline; a nil IsDone keeps the current state.
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	EstimateMin *int       `json:"estimateMin"`
	Importance  *int       `json:"importance"`
	IsDone      *bool      `json:"isDone"`
}

// ScoredTask is a task ranked for "today's picks"
type ScoredTask struct {
	Task      *entities.Task    `json:"task"`
	Score     float64           `json:"score"`
	DueStatus scoring.DueStatus `json:"dueStatus"`
}

// Health and mood related types
type SubmitHealthRequest struct {
	Condition wellness.Value `json:"condition"`
	Note      *string        `json:"note"`
	DayJst    *string        `json:"dayJst"`
}

type SubmitMoodRequest struct {
	Mood wellness.Value `json:"mood"`
	Note *string        `json:"note"`
}

// HistoryView is the merged per-day history plus the trailing summary
type HistoryView struct {
	Today   string          `json:"today"`
	Summary history.Summary `json:"summary"`
	Days    []history.Day   `json:"days"`
}

// DashboardView is the cached landing view
type DashboardView struct {
	Today      string                      `json:"today"`
	Health     *entities.DailyHealthRecord `json:"health"`
	LatestMood *entities.MoodLogEntry      `json:"latestMood"`
	Top        []ScoredTask                `json:"top"`
	OpenCount  int                         `json:"openCount"`
	Overdue    int                         `json:"overdue"`
}

// WeatherReport is the proxied forecast
type WeatherReport struct {
	OK         bool            `json:"ok"`
	Data       json.RawMessage `json:"data"`
	PlaceLabel string          `json:"placeLabel"`
}
