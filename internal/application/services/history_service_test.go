package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/wellness"
	"github.com/studywell/dashboard/internal/ports"
)

func TestHistory_MergesSameDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.wellness.SubmitHealth(ctx, ports.SubmitHealthRequest{Condition: wellness.Number(3)})
	require.NoError(t, err)
	_, err = f.wellness.SubmitMood(ctx, ports.SubmitMoodRequest{Mood: wellness.Number(4)})
	require.NoError(t, err)
	f.now = fixedNow.Add(3 * time.Hour)
	_, err = f.wellness.SubmitMood(ctx, ports.SubmitMoodRequest{Mood: wellness.Number(2), Note: strp("long lecture")})
	require.NoError(t, err)

	view, err := f.history.History(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", view.Today)
	require.Len(t, view.Days, 1)

	day := view.Days[0]
	assert.Equal(t, "2025-06-01", day.Date)
	require.NotNil(t, day.Health)
	assert.Equal(t, 3, day.Health.Condition)
	assert.ElementsMatch(t, []int{4, 2}, day.MoodValues())
	require.NotNil(t, day.AverageMood)
	assert.InDelta(t, 3.0, *day.AverageMood, 1e-9)
	assert.True(t, day.HasAnyNote)

	assert.Equal(t, "2025-05-26", view.Summary.From)
	assert.Equal(t, "2025-06-01", view.Summary.To)
	assert.Equal(t, 1, view.Summary.Good)
	require.NotNil(t, view.Summary.AverageMood)
	assert.InDelta(t, 3.0, *view.Summary.AverageMood, 1e-9)
}

func TestHistory_NewestDayFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, day := range []string{"2025-05-30", "2025-05-31", "2025-04-01"} {
		_, err := f.wellness.SubmitHealth(ctx, ports.SubmitHealthRequest{Condition: wellness.Number(float64(i%3 + 1)), DayJst: strp(day)})
		require.NoError(t, err)
	}

	view, err := f.history.History(ctx)
	require.NoError(t, err)

	require.Len(t, view.Days, 2, "records older than the 30 day window are skipped")
	assert.Equal(t, "2025-05-31", view.Days[0].Date)
	assert.Equal(t, "2025-05-30", view.Days[1].Date)
	assert.Nil(t, view.Summary.AverageMood)
}

func TestHistory_Empty(t *testing.T) {
	f := newFixture(t)

	view, err := f.history.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, view.Days)
	assert.Equal(t, civil.TodayStringAt(fixedNow), view.Today)
}
