package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/scoring"
	"github.com/studywell/dashboard/internal/ports"
)

// dayState is today's health record and latest mood, either of which may be
// missing.
type dayState struct {
	health *entities.DailyHealthRecord
	mood   *entities.MoodLogEntry
}

func (d dayState) scoring() scoring.State {
	var st scoring.State
	if d.health != nil {
		c := d.health.Condition
		st.Condition = &c
	}
	if d.mood != nil {
		m := d.mood.Mood
		st.Mood = &m
	}
	return st
}

func loadDayState(ctx context.Context, health ports.HealthRepository, moods ports.MoodRepository, now time.Time) (dayState, error) {
	today := civil.TodayKeyAt(now)
	var st dayState

	rec, err := health.GetByDate(ctx, today)
	switch {
	case err == nil:
		st.health = rec
	case !errors.Is(err, entities.ErrRecordNotFound):
		return st, fmt.Errorf("load today's health: %w", err)
	}

	mood, err := moods.LatestSince(ctx, today)
	switch {
	case err == nil:
		st.mood = mood
	case !errors.Is(err, entities.ErrRecordNotFound):
		return st, fmt.Errorf("load today's mood: %w", err)
	}

	return st, nil
}

func scoreTasks(ranked []scoring.Scored, now time.Time) []ports.ScoredTask {
	out := make([]ports.ScoredTask, len(ranked))
	for i, r := range ranked {
		out[i] = ports.ScoredTask{
			Task:      r.Task,
			Score:     r.Score,
			DueStatus: scoring.StatusOf(r.Task.DueDate, now),
		}
	}
	return out
}
