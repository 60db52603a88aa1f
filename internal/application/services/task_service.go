package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/scoring"
	"github.com/studywell/dashboard/internal/domain/settings"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/ports"
)

// DefaultTopN is the size of "today's picks"
const DefaultTopN = 3

// TaskService handles task lifecycle operations
type TaskService struct {
	taskRepo   ports.TaskRepository
	healthRepo ports.HealthRepository
	moodRepo   ports.MoodRepository
	views      *ViewCache
	metrics    *metrics.Metrics
	logger     *logger.Logger
	now        Clock
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, healthRepo ports.HealthRepository, moodRepo ports.MoodRepository, views *ViewCache, m *metrics.Metrics, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		healthRepo: healthRepo,
		moodRepo:   moodRepo,
		views:      views,
		metrics:    m,
		logger:     logger.WithComponent("task_service"),
		now:        SystemClock,
	}
}

// CreateTask validates and stores a new open task
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	title, importance, err := validateTask(req.Title, req.Importance, false, req.EstimateMin)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := &entities.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: optionalText(req.Description),
		DueDate:     utcPtr(req.DueDate),
		EstimateMin: req.EstimateMin,
		Importance:  importance,
		IsDone:      false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.LogRecordChange("task", "create", task.ID, map[string]interface{}{"title": task.Title, "importance": task.Importance})
	s.changed(ctx, "create")

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}

	return task, nil
}

// UpdateTask replaces every editable field of a task. The payload is
// validated before the task is looked up, so a bad payload never writes.
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	title, importance, err := validateTask(req.Title, req.Importance, true, req.EstimateMin)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}

	task.Title = title
	task.Description = optionalText(req.Description)
	task.DueDate = utcPtr(req.DueDate)
	task.EstimateMin = req.EstimateMin
	task.Importance = importance
	if req.IsDone != nil {
		task.IsDone = *req.IsDone
	}
	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.LogRecordChange("task", "update", task.ID, map[string]interface{}{"title": task.Title, "is_done": task.IsDone})
	s.changed(ctx, "update")

	return task, nil
}

// DeleteTask removes a task. Deleting a missing task is an error.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.logger.LogRecordChange("task", "delete", id, nil)
	s.changed(ctx, "delete")

	return nil
}

// MarkDone completes a task without touching any other field
func (s *TaskService) MarkDone(ctx context.Context, id string) error {
	if err := s.taskRepo.MarkDone(ctx, id, s.now()); err != nil {
		return fmt.Errorf("complete task %s: %w", id, err)
	}

	s.logger.LogRecordChange("task", "done", id, nil)
	s.changed(ctx, "done")

	return nil
}

// SnoozeTask pushes the deadline back by days (default 1, clamped to 1..30).
// The new deadline counts from the later of the current deadline and now, so
// an overdue task always lands in the future.
func (s *TaskService) SnoozeTask(ctx context.Context, id string, days *int) error {
	n := entities.DefaultSnoozeDays
	if days != nil {
		n = settings.ClampSnoozeDays(*days)
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get task %s: %w", id, err)
	}

	now := s.now()
	from := now
	if task.DueDate != nil && task.DueDate.After(now) {
		from = *task.DueDate
	}
	due := from.Add(time.Duration(n) * 24 * time.Hour)

	if err := s.taskRepo.UpdateDueDate(ctx, id, due, now); err != nil {
		return fmt.Errorf("snooze task %s: %w", id, err)
	}

	s.logger.LogRecordChange("task", "snooze", id, map[string]interface{}{"days": n, "due_date": due})
	s.changed(ctx, "snooze")

	return nil
}

// ListTasks returns tasks in the default order: open first, earliest deadline
// first with undated tasks last, then most important.
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	var (
		key string
		gen uint64
	)
	if filter.Limit == 0 {
		key = taskListKey + listVariant(filter.IsDone)
		var cached []*entities.Task
		var hit bool
		if gen, hit = s.views.load(ctx, entities.ViewTaskList, key, &cached); hit {
			return cached, nil
		}
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*entities.Task{}
	}

	if key != "" {
		s.views.store(ctx, entities.ViewTaskList, gen, key, tasks, 0)
	}
	return tasks, nil
}

// TopTasks ranks open tasks against today's condition and latest mood
func (s *TaskService) TopTasks(ctx context.Context, n int) ([]ports.ScoredTask, error) {
	if n <= 0 {
		n = DefaultTopN
	}

	open := false
	tasks, err := s.taskRepo.List(ctx, ports.TaskFilter{IsDone: &open})
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}

	now := s.now()
	state, err := loadDayState(ctx, s.healthRepo, s.moodRepo, now)
	if err != nil {
		return nil, err
	}

	return scoreTasks(scoring.Top(tasks, state.scoring(), now, n), now), nil
}

func (s *TaskService) changed(ctx context.Context, action string) {
	s.metrics.TaskMutated(action)
	s.views.Invalidate(ctx, entities.TaskViews...)
}

func validateTask(rawTitle string, importance *int, importanceRequired bool, estimate *int) (string, int, error) {
	title := strings.TrimSpace(rawTitle)
	if title == "" {
		return "", 0, entities.NewValidationError("title", entities.MsgTitleRequired)
	}

	imp := entities.DefaultImportance
	if importance != nil {
		imp = *importance
	} else if importanceRequired {
		return "", 0, entities.NewValidationError("importance", entities.MsgImportanceRange)
	}
	if imp < entities.MinImportance || imp > entities.MaxImportance {
		return "", 0, entities.NewValidationError("importance", entities.MsgImportanceRange)
	}

	if estimate != nil && *estimate < 0 {
		return "", 0, entities.NewValidationError("estimateMin", entities.MsgEstimateNegative)
	}

	return title, imp, nil
}

func listVariant(isDone *bool) string {
	switch {
	case isDone == nil:
		return "all"
	case *isDone:
		return "done"
	default:
		return "open"
	}
}

// optionalText treats a blank string as absent
func optionalText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
