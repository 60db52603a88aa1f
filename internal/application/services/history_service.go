package services

import (
	"context"
	"fmt"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/history"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/ports"
)

// HistoryService builds the per-day history view
type HistoryService struct {
	healthRepo ports.HealthRepository
	moodRepo   ports.MoodRepository
	logger     *logger.Logger
	now        Clock
}

// NewHistoryService creates a new history service
func NewHistoryService(healthRepo ports.HealthRepository, moodRepo ports.MoodRepository, logger *logger.Logger) *HistoryService {
	return &HistoryService{
		healthRepo: healthRepo,
		moodRepo:   moodRepo,
		logger:     logger.WithComponent("history_service"),
		now:        SystemClock,
	}
}

// History merges the last 30 civil days of health records with the most
// recent mood entries and summarizes the trailing week.
func (s *HistoryService) History(ctx context.Context) (*ports.HistoryView, error) {
	now := s.now()
	today := civil.TodayKeyAt(now)

	records, err := s.healthRepo.ListSince(ctx, civil.AddDays(today, -(history.DefaultDays-1)))
	if err != nil {
		return nil, fmt.Errorf("failed to load health history: %w", err)
	}

	moods, err := s.moodRepo.ListRecent(ctx, history.DefaultMoodLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood history: %w", err)
	}

	days := history.Aggregate(records, moods, history.DefaultDays)
	s.logger.Debugw("History aggregated", "records", len(records), "moods", len(moods), "days", len(days))

	return &ports.HistoryView{
		Today:   civil.DateString(now),
		Summary: history.Summarize(days, now, history.SummaryWindow),
		Days:    days,
	}, nil
}
