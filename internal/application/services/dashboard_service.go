package services

import (
	"context"
	"fmt"

	"github.com/studywell/dashboard/internal/domain/civil"
	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/domain/scoring"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/ports"
)

// DashboardService builds the landing view: today's state and the top picks
type DashboardService struct {
	taskRepo   ports.TaskRepository
	healthRepo ports.HealthRepository
	moodRepo   ports.MoodRepository
	views      *ViewCache
	logger     *logger.Logger
	now        Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(taskRepo ports.TaskRepository, healthRepo ports.HealthRepository, moodRepo ports.MoodRepository, views *ViewCache, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		taskRepo:   taskRepo,
		healthRepo: healthRepo,
		moodRepo:   moodRepo,
		views:      views,
		logger:     logger.WithComponent("dashboard_service"),
		now:        SystemClock,
	}
}

// Dashboard returns the cached view when it was built for the current civil
// day, and rebuilds it otherwise.
func (s *DashboardService) Dashboard(ctx context.Context) (*ports.DashboardView, error) {
	now := s.now()

	var cached ports.DashboardView
	gen, hit := s.views.load(ctx, entities.ViewDashboard, dashboardKey, &cached)
	if hit && cached.Today == civil.DateString(now) {
		return &cached, nil
	}

	view, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}

	s.views.store(ctx, entities.ViewDashboard, gen, dashboardKey, view, 0)
	return view, nil
}

// Build computes the dashboard from storage without consulting the cache
func (s *DashboardService) Build(ctx context.Context) (*ports.DashboardView, error) {
	now := s.now()

	open := false
	tasks, err := s.taskRepo.List(ctx, ports.TaskFilter{IsDone: &open})
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}

	state, err := loadDayState(ctx, s.healthRepo, s.moodRepo, now)
	if err != nil {
		return nil, err
	}

	overdue := 0
	for _, t := range tasks {
		if scoring.StatusOf(t.DueDate, now) == scoring.DueOverdue {
			overdue++
		}
	}

	return &ports.DashboardView{
		Today:      civil.DateString(now),
		Health:     state.health,
		LatestMood: state.mood,
		Top:        scoreTasks(scoring.Top(tasks, state.scoring(), now, DefaultTopN), now),
		OpenCount:  len(tasks),
		Overdue:    overdue,
	}, nil
}
