package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/scoring"
	"github.com/studywell/dashboard/internal/domain/wellness"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/ports"
)

// TaskRequest is the create/replace payload. DueDate accepts RFC 3339, a
// local datetime or a bare civil date.
type TaskRequest struct {
	Title       string  `json:"title" example:"Read chapter 3"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate" example:"2025-06-03T18:00"`
	EstimateMin *int    `json:"estimateMin" validate:"omitempty,min=0"`
	Importance  *int    `json:"importance" validate:"omitempty,min=1,max=5"`
	IsDone      *bool   `json:"isDone"`
}

// SnoozeRequest is the optional snooze payload. Days may be a number or a
// numeric string; anything else means the default of one day.
type SnoozeRequest struct {
	Days wellness.Value `json:"days" swaggertype:"integer" example:"1"`
}

// TaskResponse is a task with its display deadline bucket
type TaskResponse struct {
	*entities.Task
	DueStatus scoring.DueStatus `json:"dueStatus"`
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
	now         func() time.Time
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskRequest true "Task data"
// @Success 201 {object} TaskResponse
// @Failure 400 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req TaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), ports.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		EstimateMin: req.EstimateMin,
		Importance:  req.Importance,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, h.response(task))
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.response(task))
}

// UpdateTask godoc
// @Summary Replace a task
// @Description Replaces every editable field. An absent dueDate clears the deadline.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body TaskRequest true "Task data"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req TaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), ports.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		EstimateMin: req.EstimateMin,
		Importance:  req.Importance,
		IsDone:      req.IsDone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.response(task))
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkDone godoc
// @Summary Complete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id}/done [post]
func (h *TaskHandler) MarkDone(c echo.Context) error {
	if err := h.taskService.MarkDone(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SnoozeTask godoc
// @Summary Push a deadline back
// @Description Moves the deadline by days (default 1, clamped to 1..30).
// @Tags tasks
// @Accept json
// @Param id path string true "Task ID"
// @Param request body SnoozeRequest false "Snooze days"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id}/snooze [post]
func (h *TaskHandler) SnoozeTask(c echo.Context) error {
	var req SnoozeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.taskService.SnoozeTask(c.Request().Context(), c.Param("id"), snoozeDays(req.Days)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTasks godoc
// @Summary List tasks
// @Description Open tasks first, then by deadline with undated last, then by importance.
// @Tags tasks
// @Produce json
// @Param done query bool false "Filter by completion"
// @Success 200 {array} TaskResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	var filter ports.TaskFilter
	if raw := c.QueryParam("done"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			return &payloadError{cause: err}
		}
		filter.IsDone = &done
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = h.response(t)
	}
	return c.JSON(http.StatusOK, out)
}

// TopTasks godoc
// @Summary Today's picks
// @Description Open tasks ranked by importance, today's condition, latest mood and deadline.
// @Tags tasks
// @Produce json
// @Param limit query int false "Number of tasks" default(3)
// @Success 200 {array} ports.ScoredTask
// @Router /tasks/top [get]
func (h *TaskHandler) TopTasks(c echo.Context) error {
	n := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return &payloadError{cause: fmt.Errorf("invalid limit %q", raw)}
		}
		n = limit
	}

	top, err := h.taskService.TopTasks(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, top)
}

func (h *TaskHandler) response(t *entities.Task) TaskResponse {
	return TaskResponse{Task: t, DueStatus: scoring.StatusOf(t.DueDate, h.now())}
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	due, err := civil.ParseInstant(*raw)
	if err != nil {
		return nil, entities.NewValidationError("dueDate", entities.MsgInvalidDueDate)
	}
	return &due, nil
}

// snoozeDays reads the requested day count. Values that are not a finite
// number yield nil so the service applies its default. Fractions are
// truncated and the result is kept within 1..30.
func snoozeDays(v wellness.Value) *int {
	var n float64
	switch v.Kind {
	case wellness.KindNumber:
		n = v.Number
	case wellness.KindText:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}

	n = math.Max(float64(entities.MinSnoozeDays), math.Min(float64(entities.MaxSnoozeDays), math.Trunc(n)))
	days := int(n)
	return &days
}
