package entities

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrRecordNotFound = errors.New("record not found")
	ErrValidation     = errors.New("validation failed")
	ErrStorage        = errors.New("storage failure")
	ErrDuplicateDay   = errors.New("health record already exists for day")
	ErrUpstream       = errors.New("upstream service unavailable")
)

// Message IDs for validation failures; they double as translation keys.
const (
	MsgTitleRequired      = "titleRequired"
	MsgImportanceRange    = "importanceRange"
	MsgEstimateNegative   = "estimateNegative"
	MsgInvalidCondition   = "invalidCondition"
	MsgInvalidMood        = "invalidMood"
	MsgInvalidDayFormat   = "invalidDayFormat"
	MsgInvalidPayload     = "invalidPayload"
	MsgInvalidDueDate     = "invalidDueDate"
	MsgInvalidTheme       = "invalidTheme"
	MsgInvalidHighlight   = "invalidHighlightColor"
	MsgTaskNotFound       = "taskNotFound"
	MsgInternal           = "internalError"
	MsgWeatherUnavailable = "weatherUnavailable"
	MsgInvalidCoordinates = "invalidCoordinates"
)

// ValidationError is returned for malformed or out-of-range input.
// It always matches ErrValidation via errors.Is.
type ValidationError struct {
	Field     string
	MessageID string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.MessageID)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field
func NewValidationError(field, messageID string) *ValidationError {
	return &ValidationError{Field: field, MessageID: messageID}
}

// Bounds shared by the lifecycle and ingestion layers
const (
	MinImportance     = 1
	MaxImportance     = 5
	DefaultImportance = 3

	MinSnoozeDays     = 1
	MaxSnoozeDays     = 30
	DefaultSnoozeDays = 1
)

// Health conditions
const (
	ConditionBad    = 1
	ConditionNormal = 2
	ConditionGood   = 3
)

// Task is a single to-do item
type Task struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	DueDate     *time.Time `json:"dueDate" db:"due_date"`
	EstimateMin *int       `json:"estimateMin" db:"estimate_min"`
	Importance  int        `json:"importance" db:"importance"`
	IsDone      bool       `json:"isDone" db:"is_done"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Clone returns a deep copy so callers cannot alias stored pointers
func (t *Task) Clone() *Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.EstimateMin != nil {
		e := *t.EstimateMin
		c.EstimateMin = &e
	}
	return &c
}

// DailyHealthRecord is the one-per-civil-day health condition.
// Date is the instant of local midnight and acts as the natural key.
type DailyHealthRecord struct {
	ID        string    `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"date_key"`
	Condition int       `json:"condition" db:"condition"`
	Note      *string   `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// MoodLogEntry is an append-only mood sample
type MoodLogEntry struct {
	ID   string    `json:"id" db:"id"`
	At   time.Time `json:"at" db:"recorded_at"`
	Mood int       `json:"mood" db:"mood"`
	Note *string   `json:"note,omitempty" db:"note"`
}

// View names a cached, pre-rendered listing that task mutations invalidate
type View string

const (
	ViewDashboard View = "dashboard"
	ViewTaskList  View = "task-list"
)

// TaskViews are the views every structural task change invalidates
var TaskViews = []View{ViewDashboard, ViewTaskList}
