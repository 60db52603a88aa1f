package commands

import (
	"context"
	"fmt"

	"github.com/studywell/dashboard/internal/adapters/cache"
	"github.com/studywell/dashboard/internal/adapters/repository"
	"github.com/studywell/dashboard/internal/adapters/weather"
	"github.com/studywell/dashboard/internal/application/services"
	"github.com/studywell/dashboard/internal/infrastructure/config"
	"github.com/studywell/dashboard/internal/infrastructure/database"
	"github.com/studywell/dashboard/internal/infrastructure/logger"
	"github.com/studywell/dashboard/internal/infrastructure/metrics"
	"github.com/studywell/dashboard/internal/infrastructure/translator"
	"github.com/studywell/dashboard/internal/ports"
)

// app holds everything a command needs once configuration is loaded
type app struct {
	cfg        *config.Config
	logger     *logger.Logger
	db         *database.DB
	metrics    *metrics.Metrics
	translator *translator.Translator
	services   *services.Services
	closers    []func() error
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: appLogger, metrics: metrics.New()}

	repos, err := a.openStorage()
	if err != nil {
		a.Close()
		return nil, err
	}

	store, err := a.openCache(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.translator, err = translator.New(cfg.UI.DefaultLang)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	a.services = services.New(
		repos.Tasks, repos.Health, repos.Moods,
		store,
		weather.NewClient(cfg.Weather),
		services.Options{
			ViewTTL:    cfg.Cache.TTL,
			WeatherTTL: cfg.Weather.CacheTTL,
			DefaultLat: cfg.Weather.DefaultLat,
			DefaultLon: cfg.Weather.DefaultLon,
		},
		a.metrics,
		appLogger,
	)

	return a, nil
}

func (a *app) openStorage() (repository.Repositories, error) {
	if a.cfg.Database.Driver == "memory" {
		a.logger.Warn("Using in-memory storage, records are lost on exit")
		return repository.NewMemoryRepositories(), nil
	}

	db, err := database.New(a.cfg.Database)
	if err != nil {
		return repository.Repositories{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	if a.cfg.Database.AutoMigrate {
		mg, err := database.NewMigrator(db)
		if err != nil {
			return repository.Repositories{}, err
		}
		changed, err := mg.Up()
		if err != nil {
			return repository.Repositories{}, err
		}
		if changed {
			a.logger.Infow("Database schema migrated", "driver", db.Driver())
		}
	}

	a.logger.Infow("Connected to database", "driver", db.Driver())
	return repository.NewSQLRepositories(db.DB), nil
}

func (a *app) openCache(ctx context.Context) (ports.CacheRepository, error) {
	if a.cfg.Cache.Driver != "redis" {
		return cache.NewMemoryCache(), nil
	}

	client, err := cache.NewRedisClient(ctx, a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)

	a.logger.Infow("Connected to redis", "addr", a.cfg.Redis.GetAddr())
	return cache.NewRedisCache(client, a.cfg.Redis.KeyPrefix), nil
}

// Close releases connections in reverse order of opening
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warnw("Close failed", "error", err)
		}
	}
	_ = a.logger.Close()
}
