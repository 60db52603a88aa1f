// Package scoring turns a task's importance and the user's current state into
// a ranking score. All functions are pure and total: missing or out-of-range
// input maps to a neutral coefficient instead of an error.
package scoring

import (
	"sort"
	"time"

	"github.com/studywell/dashboard/internal/domain/entities"
)

// HealthCoefficient maps a daily condition to a multiplier.
// A missing record scores slightly low, like "normal".
func HealthCoefficient(condition *int) float64 {
	if condition == nil {
		return 0.9
	}
	switch *condition {
	case entities.ConditionGood:
		return 1.0
	case entities.ConditionNormal:
		return 0.9
	case entities.ConditionBad:
		return 0.75
	default:
		return 0.9
	}
}

// MoodCoefficient maps a 1..5 mood to 0.9..1.3. Zero counts as absent.
func MoodCoefficient(mood *int) float64 {
	if mood == nil || *mood == 0 {
		return 1.0
	}
	m := *mood
	if m < 1 {
		m = 1
	}
	if m > 5 {
		m = 5
	}
	return 0.8 + 0.1*float64(m)
}

// DueCoefficient boosts tasks due within 72 hours. Overdue tasks get the same
// boost as tasks due within a day.
func DueCoefficient(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 1.0
	}
	hours := due.Sub(now).Hours()
	switch {
	case hours <= 24:
		return 1.2
	case hours <= 72:
		return 1.1
	default:
		return 1.0
	}
}

// TaskScore combines importance with the three coefficients.
func TaskScore(importance int, healthCoef, moodCoef, dueCoef float64) float64 {
	return float64(importance) * healthCoef * moodCoef * dueCoef
}

// State is the user context a ranking is computed against.
type State struct {
	Condition *int
	Mood      *int
}

// Scored pairs a task with its score.
type Scored struct {
	Task  *entities.Task
	Score float64
}

// Score computes a single task's score under state at now.
func Score(t *entities.Task, state State, now time.Time) float64 {
	return TaskScore(
		t.Importance,
		HealthCoefficient(state.Condition),
		MoodCoefficient(state.Mood),
		DueCoefficient(t.DueDate, now),
	)
}

// Rank drops completed tasks and orders the rest by score, highest first.
// Equal scores keep their input order.
func Rank(tasks []*entities.Task, state State, now time.Time) []Scored {
	out := make([]Scored, 0, len(tasks))
	for _, t := range tasks {
		if t.IsDone {
			continue
		}
		out = append(out, Scored{Task: t, Score: Score(t, state, now)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Top returns at most n ranked tasks.
func Top(tasks []*entities.Task, state State, now time.Time, n int) []Scored {
	ranked := Rank(tasks, state, now)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DueStatus classifies a deadline for display. Unlike the score, overdue is
// its own bucket here.
type DueStatus string

const (
	DueNone     DueStatus = "none"
	DueOverdue  DueStatus = "overdue"
	DueSoon     DueStatus = "soon"
	DueUpcoming DueStatus = "upcoming"
)

// StatusOf returns the display bucket of a deadline. "soon" means within 48h,
// the same window the reminder summary highlights.
func StatusOf(due *time.Time, now time.Time) DueStatus {
	if due == nil {
		return DueNone
	}
	switch {
	case now.After(*due):
		return DueOverdue
	case due.Sub(now) <= 48*time.Hour:
		return DueSoon
	default:
		return DueUpcoming
	}
}
