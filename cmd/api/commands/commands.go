package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/studywell/dashboard/internal/infrastructure/config"
	"github.com/studywell/dashboard/internal/infrastructure/database"
	"github.com/studywell/dashboard/internal/infrastructure/scheduler"
	"github.com/studywell/dashboard/internal/infrastructure/server"
)

// Set with -ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

const digestTimeout = time.Minute

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the StudyWell API server",
		Long:  "Start the HTTP API and, when enabled, the daily digest scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the postgres or sqlite3 schema (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewDigestCommand builds today's dashboard once and prints the picks
func NewDigestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Run the daily digest now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd.Context())
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print StudyWell version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("StudyWell %s\n", Version)
			fmt.Printf("Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := server.New(a.cfg, a.services, a.db, a.metrics, a.translator, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if a.cfg.Scheduler.Enabled {
		sched := scheduler.New(a.logger)
		id, err := sched.Schedule("digest", a.cfg.Scheduler.DigestSpec, digestTimeout, func(ctx context.Context) error {
			_, err := a.services.Digest.Run(ctx)
			return err
		})
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		a.logger.Infow("Daily digest scheduled", "spec", a.cfg.Scheduler.DigestSpec, "next", sched.Next(id))
	}

	address := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		a.logger.Infow("Starting StudyWell API server",
			"address", address,
			"environment", a.cfg.App.Environment,
			"database", a.cfg.Database.Driver,
			"cache", a.cfg.Cache.Driver,
		)

		if err := srv.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		a.logger.Infow("Shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.logger.Info("Server exited gracefully")
	return nil
}

func runDigest(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, digestTimeout)
	defer cancel()

	view, err := a.services.Digest.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Digest for %s\n", view.Today)
	fmt.Printf("  Open tasks: %d (overdue %d)\n", view.OpenCount, view.Overdue)
	if view.Health != nil {
		fmt.Printf("  Condition: %d\n", view.Health.Condition)
	}
	if view.LatestMood != nil {
		fmt.Printf("  Latest mood: %d\n", view.LatestMood.Mood)
	}
	for i, t := range view.Top {
		fmt.Printf("  %d. %s (score %.2f)\n", i+1, t.Task.Title, t.Score)
	}
	return nil
}

func openMigrator() (*database.Migrator, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver == "memory" {
		return nil, nil, errors.New("the memory driver has no schema to migrate")
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	mg, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return mg, db, nil
}

func runMigration(direction string) error {
	mg, db, err := openMigrator()
	if err != nil {
		return err
	}
	defer db.Close()

	var changed bool
	switch direction {
	case "up":
		changed, err = mg.Up()
	case "down":
		changed, err = mg.Down()
	}
	if err != nil {
		return err
	}

	if !changed {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
	return nil
}

func showMigrationVersion() error {
	mg, db, err := openMigrator()
	if err != nil {
		return err
	}
	defer db.Close()

	version, dirty, err := mg.Version()
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
	return nil
}
