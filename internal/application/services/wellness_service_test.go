package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/wellness"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/ports"
)

// racingHealthRepo loses the first insert race, like a concurrent writer
// creating the same day in between the lookup and the insert.
type racingHealthRepo struct {
	ports.HealthRepository
	calls int
}

func (r *racingHealthRepo) Upsert(ctx context.Context, record *entities.DailyHealthRecord) error {
	r.calls++
	if r.calls == 1 {
		return entities.ErrDuplicateDay
	}
	return r.HealthRepository.Upsert(ctx, record)
}

func TestSubmitHealth_OverwritesSameDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.wellness.SubmitHealth(ctx, ports.SubmitHealthRequest{Condition: wellness.Text("良い")})
	require.NoError(t, err)
	assert.Equal(t, entities.ConditionGood, first.Condition)

	f.now = fixedNow.Add(2 * time.Hour)
	_, err = f.wellness.SubmitHealth(ctx, ports.SubmitHealthRequest{Condition: wellness.Number(1), Note: strp("tired")})
	require.NoError(t, err)

	stored, err := f.health.GetByDate(ctx, civil.TodayKeyAt(fixedNow))
	require.NoError(t, err)
	assert.Equal(t, entities.ConditionBad, stored.Condition)
	require.NotNil(t, stored.Note)
	assert.Equal(t, "tired", *stored.Note)

	records, err := f.health.ListSince(ctx, civil.AddDays(civil.TodayKeyAt(fixedNow), -1))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSubmitHealth_ExplicitDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.wellness.SubmitHealth(ctx, ports.SubmitHealthRequest{Condition: wellness.Text("normal"), DayJst: strp("2025-05-20")})
	require.NoError(t, err)
	assert.Equal(t, "2025-05-20", civil.DateString(rec.Date))

	_, err = f.health.GetByDate(ctx, civil.TodayKeyAt(fixedNow))
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)
}

func TestSubmitHealth_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  ports.SubmitHealthRequest
		msg  string
	}{
		{"unknown label", ports.SubmitHealthRequest{Condition: wellness.Text("great")}, entities.MsgInvalidCondition},
		{"out of range", ports.SubmitHealthRequest{Condition: wellness.Number(4)}, entities.MsgInvalidCondition},
		{"missing", ports.SubmitHealthRequest{}, entities.MsgInvalidCondition},
		{"bad day", ports.SubmitHealthRequest{Condition: wellness.Number(2), DayJst: strp("2025/05/20")}, entities.MsgInvalidDayFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.wellness.SubmitHealth(ctx, tc.req)
			var ve *entities.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.msg, ve.MessageID)
		})
	}
}

func TestSubmitHealth_RetriesLostRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	repo := &racingHealthRepo{HealthRepository: f.health}
	svc := NewWellnessService(repo, f.moods, f.views, f.metrics, logger.NewNop())
	svc.now = func() time.Time { return fixedNow }

	rec, err := svc.SubmitHealth(ctx, ports.SubmitHealthRequest{Condition: wellness.Number(3)})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	stored, err := f.health.GetByDate(ctx, rec.Date)
	require.NoError(t, err)
	assert.Equal(t, entities.ConditionGood, stored.Condition)
}

func TestSubmitMood_AppendsEveryEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.wellness.SubmitMood(ctx, ports.SubmitMoodRequest{Mood: wellness.Text("🙂")})
	require.NoError(t, err)

	f.now = fixedNow.Add(time.Minute)
	second, err := f.wellness.SubmitMood(ctx, ports.SubmitMoodRequest{Mood: wellness.Text("very_bad"), Note: strp("  ")})
	require.NoError(t, err)
	assert.Nil(t, second.Note)

	entries, err := f.moods.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Mood)
	assert.Equal(t, 4, entries[1].Mood)

	_, err = f.wellness.SubmitMood(ctx, ports.SubmitMoodRequest{Mood: wellness.Number(0)})
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestSubmissions_InvalidateDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.dashboard.Dashboard(ctx)
	require.NoError(t, err)
	assert.Nil(t, view.Health)

	_, err = f.wellness.SubmitHealth(ctx, ports.SubmitHealthRequest{Condition: wellness.Number(2)})
	require.NoError(t, err)

	view, err = f.dashboard.Dashboard(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.Health)
	assert.Equal(t, entities.ConditionNormal, view.Health.Condition)
	assert.Nil(t, view.LatestMood)

	_, err = f.wellness.SubmitMood(ctx, ports.SubmitMoodRequest{Mood: wellness.Number(5)})
	require.NoError(t, err)

	view, err = f.dashboard.Dashboard(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.LatestMood)
	assert.Equal(t, 5, view.LatestMood.Mood)
}
