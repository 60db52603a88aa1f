package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/wellness"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/ports"
)

// WellnessService ingests daily health records and mood samples
type WellnessService struct {
	healthRepo ports.HealthRepository
	moodRepo   ports.MoodRepository
	views      *ViewCache
	metrics    *metrics.Metrics
	logger     *logger.Logger
	now        Clock
}

// NewWellnessService creates a new wellness service
func NewWellnessService(healthRepo ports.HealthRepository, moodRepo ports.MoodRepository, views *ViewCache, m *metrics.Metrics, logger *logger.Logger) *WellnessService {
	return &WellnessService{
		healthRepo: healthRepo,
		moodRepo:   moodRepo,
		views:      views,
		metrics:    m,
		logger:     logger.WithComponent("wellness_service"),
		now:        SystemClock,
	}
}

// SubmitHealth creates or overwrites the record for a civil day (today when
// DayJst is absent). A concurrent insert for the same day that wins the
// unique-key race is overwritten by a single retry.
func (s *WellnessService) SubmitHealth(ctx context.Context, req ports.SubmitHealthRequest) (*entities.DailyHealthRecord, error) {
	condition, ok := wellness.NormalizeCondition(req.Condition)
	if !ok {
		return nil, entities.NewValidationError("condition", entities.MsgInvalidCondition)
	}

	now := s.now()
	day := civil.TodayKeyAt(now)
	if req.DayJst != nil && *req.DayJst != "" {
		parsed, err := civil.ParseDate(*req.DayJst)
		if err != nil {
			return nil, entities.NewValidationError("dayJst", entities.MsgInvalidDayFormat)
		}
		day = parsed
	}

	record := &entities.DailyHealthRecord{
		ID:        uuid.NewString(),
		Date:      day,
		Condition: condition,
		Note:      optionalText(req.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.healthRepo.Upsert(ctx, record)
	if errors.Is(err, entities.ErrDuplicateDay) {
		s.logger.Infow("Health record insert lost a race; retrying as overwrite", "date", civil.DateString(day))
		err = s.healthRepo.Upsert(ctx, record)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save health record: %w", err)
	}

	s.logger.LogRecordChange("health", "upsert", record.ID, map[string]interface{}{"date": civil.DateString(day), "condition": condition})
	s.metrics.RecordSubmitted("health")
	s.views.Invalidate(ctx, entities.ViewDashboard)

	return record, nil
}

// SubmitMood appends a mood sample stamped with the current time
func (s *WellnessService) SubmitMood(ctx context.Context, req ports.SubmitMoodRequest) (*entities.MoodLogEntry, error) {
	mood, ok := wellness.NormalizeMood(req.Mood)
	if !ok {
		return nil, entities.NewValidationError("mood", entities.MsgInvalidMood)
	}

	entry := &entities.MoodLogEntry{
		ID:   uuid.NewString(),
		At:   s.now(),
		Mood: mood,
		Note: optionalText(req.Note),
	}

	if err := s.moodRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save mood entry: %w", err)
	}

	s.logger.LogRecordChange("mood", "append", entry.ID, map[string]interface{}{"mood": mood})
	s.metrics.RecordSubmitted("mood")
	s.views.Invalidate(ctx, entities.ViewDashboard)

	return entry, nil
}
