package services

import (
	"context"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/ports"
)

// DigestService produces the morning summary: it rebuilds the dashboard,
// warms the cache with it and logs the picks.
type DigestService struct {
	dashboard *DashboardService
	views     *ViewCache
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewDigestService creates a new digest service
func NewDigestService(dashboard *DashboardService, views *ViewCache, m *metrics.Metrics, logger *logger.Logger) *DigestService {
	return &DigestService{
		dashboard: dashboard,
		views:     views,
		metrics:   m,
		logger:    logger.WithComponent("digest"),
	}
}

// Run builds and caches today's dashboard
func (s *DigestService) Run(ctx context.Context) (*ports.DashboardView, error) {
	gen := s.views.generation(entities.ViewDashboard)
	view, err := s.dashboard.Build(ctx)
	if err != nil {
		s.logger.Errorw("Daily digest failed", "error", err)
		return nil, err
	}

	s.views.store(ctx, entities.ViewDashboard, gen, dashboardKey, view, 0)
	s.metrics.DigestRan()

	picks := make([]string, len(view.Top))
	for i, t := range view.Top {
		picks[i] = t.Task.Title
	}
	s.logger.Infow("Daily digest",
		"date", view.Today,
		"open_tasks", view.OpenCount,
		"overdue", view.Overdue,
		"picks", picks,
	)

	return view, nil
}
