package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func strp(s string) *string { return &s }

func TestAggregate_MergesSameCivilDay(t *testing.T) {
	key := day(t, "2025-06-01")
	records := []entities.DailyHealthRecord{{ID: "h1", Date: key, Condition: 3}}
	moods := []entities.MoodLogEntry{
		// 23:30 civil on 2025-06-01 is 14:30 UTC the same date.
		{ID: "m1", At: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), Mood: 4},
		// 00:10 civil on 2025-06-01 is 15:10 UTC the previous date.
		{ID: "m2", At: time.Date(2025, 5, 31, 15, 10, 0, 0, time.UTC), Mood: 2},
	}

	days := Aggregate(records, moods, DefaultDays)
	require.Len(t, days, 1)

	d := days[0]
	assert.Equal(t, "2025-06-01", d.Date)
	require.NotNil(t, d.Health)
	assert.Equal(t, 3, d.Health.Condition)
	assert.ElementsMatch(t, []int{4, 2}, d.MoodValues())
	require.NotNil(t, d.AverageMood)
	assert.InDelta(t, 3.0, *d.AverageMood, 1e-9)
	assert.False(t, d.HasAnyNote)
}

func TestAggregate_EdgeRows(t *testing.T) {
	records := []entities.DailyHealthRecord{{Date: day(t, "2025-06-02"), Condition: 1, Note: strp("  ")}}
	moods := []entities.MoodLogEntry{{At: day(t, "2025-06-03").Add(time.Hour), Mood: 5, Note: strp(" tired ")}}

	days := Aggregate(records, moods, DefaultDays)
	require.Len(t, days, 2)

	// Newest first.
	assert.Equal(t, "2025-06-03", days[0].Date)
	assert.Nil(t, days[0].Health)
	assert.Equal(t, []int{5}, days[0].MoodValues())
	assert.True(t, days[0].HasAnyNote)

	assert.Equal(t, "2025-06-02", days[1].Date)
	assert.Empty(t, days[1].Moods)
	assert.Nil(t, days[1].AverageMood)
	assert.False(t, days[1].HasAnyNote, "whitespace-only note does not count")
}

func TestAggregate_Limit(t *testing.T) {
	start := day(t, "2025-01-01")
	var records []entities.DailyHealthRecord
	for i := 0; i < 40; i++ {
		records = append(records, entities.DailyHealthRecord{Date: civil.AddDays(start, i), Condition: 2})
	}

	days := Aggregate(records, nil, 30)
	require.Len(t, days, 30)
	assert.Equal(t, "2025-02-09", days[0].Date)
	assert.Equal(t, "2025-01-11", days[29].Date)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC) // 12:00 civil on 06-10
	avg := func(v float64) *float64 { return &v }

	days := []Day{
		{Date: "2025-06-10", Health: &entities.DailyHealthRecord{Condition: 3}, AverageMood: avg(4)},
		{Date: "2025-06-08", Health: &entities.DailyHealthRecord{Condition: 1}},
		{Date: "2025-06-06", AverageMood: avg(2)},
		{Date: "2025-06-04", Health: &entities.DailyHealthRecord{Condition: 2}, AverageMood: avg(3)},
		{Date: "2025-06-03", Health: &entities.DailyHealthRecord{Condition: 3}, AverageMood: avg(1)},
	}

	s := Summarize(days, now, SummaryWindow)
	assert.Equal(t, "2025-06-04", s.From)
	assert.Equal(t, "2025-06-10", s.To)
	require.NotNil(t, s.AverageMood)
	assert.InDelta(t, 3.0, *s.AverageMood, 1e-9)
	assert.Equal(t, 1, s.Good)
	assert.Equal(t, 1, s.Normal)
	assert.Equal(t, 1, s.Bad)
}

func TestSummarize_NoMoods(t *testing.T) {
	now := time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)
	s := Summarize([]Day{{Date: "2025-06-09", Health: &entities.DailyHealthRecord{Condition: 2}}}, now, SummaryWindow)
	assert.Nil(t, s.AverageMood)
	assert.Equal(t, 1, s.Normal)
}
