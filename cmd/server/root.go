package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/moodcheckin/internal/config"
	"github.com/moodcheckin/internal/db"
	"github.com/moodcheckin/internal/logging"
	"github.com/moodcheckin/internal/metrics"
	"github.com/moodcheckin/internal/router"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "moodcheckin",
	Short:        "Mood check-in API server",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap 读取配置并构造日志与数据库选项，两个子命令共用。
func bootstrap() (config.AppConfig, *logrus.Logger, db.Options, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, db.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cfg, nil, db.Options{}, err
	}

	opts := db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Logger: logging.GormLogger(logger),
	}
	return cfg, logger, opts, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, logger, opts, err := bootstrap()
	if err != nil {
		return err
	}

	gdb, err := db.Init(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close(gdb)

	logger.WithField("driver", opts.Driver).Info("database schema is up to date")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, opts, err := bootstrap()
	if err != nil {
		return err
	}

	if cfg.UsesDefaultAPIKey() {
		logger.Warn("API_KEY not set, using the development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	gdb, err := db.Init(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close(gdb)

	gin.SetMode(cfg.GinMode)
	r := router.SetupRouter(gdb, router.Options{
		APIKey:  cfg.APIKey,
		Logger:  logger,
		Metrics: metrics.New(),
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.ListenAddr).Info("mood check-in API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
