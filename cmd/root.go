package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/jobs"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

var envFile string

// NewRootCommand returns the CLI: the root command serves the API and runs
// the outbox relay, "migrate" updates the database schema.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "logistics",
		Short:         "Shipment order workflow service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "path of the .env file")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  migrate,
	})

	return root
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := NewCompositionRoot(cfg, db, logger)

	router, err := app.CreateRouter(ctx)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	publisher, err := app.CreatePublisher()
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close publisher", "error", err)
		}
	}()

	relay, err := app.CreateOutboxRelayJob(publisher)
	if err != nil {
		return fmt.Errorf("create outbox relay: %w", err)
	}
	jobManager := jobs.NewJobManager(relay)
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		logger.Info("HTTP server started", "addr", addr)
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	return router.Shutdown(shutdownCtx)
}

func migrate(*cobra.Command, []string) error {
	_, logger, db, err := bootstrap()
	if err != nil {
		return err
	}

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Info("Schema is up to date")
	return nil
}

func bootstrap() (Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return Config{}, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return Config{}, nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return cfg, logger, db, nil
}
