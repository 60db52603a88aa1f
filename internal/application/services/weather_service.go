package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/studywell/dashboard/internal/domain/entities"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/ports"
)

const weatherView entities.View = "weather"

// WeatherService proxies the forecast for a coordinate and caches it
type WeatherService struct {
	provider   ports.WeatherProvider
	views      *ViewCache
	ttl        time.Duration
	defaultLat string
	defaultLon string
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewWeatherService creates a weather service. Missing coordinates fall back
// to defaultLat/defaultLon.
func NewWeatherService(provider ports.WeatherProvider, views *ViewCache, ttl time.Duration, defaultLat, defaultLon string, m *metrics.Metrics, logger *logger.Logger) *WeatherService {
	return &WeatherService{
		provider:   provider,
		views:      views,
		ttl:        ttl,
		defaultLat: defaultLat,
		defaultLon: defaultLon,
		metrics:    m,
		logger:     logger.WithComponent("weather_service"),
	}
}

// Forecast fetches the forecast and place label concurrently. A failed
// forecast fails the call; a failed geocode only leaves the label empty.
func (s *WeatherService) Forecast(ctx context.Context, lat, lon string) (*ports.WeatherReport, error) {
	if lat == "" {
		lat = s.defaultLat
	}
	if lon == "" {
		lon = s.defaultLon
	}
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		return nil, entities.NewValidationError("lat", entities.MsgInvalidCoordinates)
	}
	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		return nil, entities.NewValidationError("lon", entities.MsgInvalidCoordinates)
	}

	key := "weather:" + lat + "," + lon
	var cached ports.WeatherReport
	gen, hit := s.views.load(ctx, weatherView, key, &cached)
	if hit {
		return &cached, nil
	}

	var (
		wg                  sync.WaitGroup
		forecast            []byte
		label               string
		forecastErr, geoErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.provider.Forecast(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		label, geoErr = s.provider.PlaceLabel(ctx, lat, lon)
	}()
	wg.Wait()

	if forecastErr != nil {
		s.metrics.WeatherFetched("error")
		s.logger.Warnw("Forecast lookup failed", "lat", lat, "lon", lon, "error", forecastErr)
		return nil, fmt.Errorf("%w: %v", entities.ErrUpstream, forecastErr)
	}
	if geoErr != nil {
		s.logger.Warnw("Reverse geocoding failed", "lat", lat, "lon", lon, "error", geoErr)
		label = ""
	}
	s.metrics.WeatherFetched("ok")

	report := &ports.WeatherReport{
		OK:         true,
		Data:       json.RawMessage(forecast),
		PlaceLabel: label,
	}
	s.views.store(ctx, weatherView, gen, key, report, s.ttl)

	return report, nil
}
