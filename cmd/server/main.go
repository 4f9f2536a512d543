package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veho-technologies/tech-execution-planning/config"
	"github.com/veho-technologies/tech-execution-planning/internal/api/handler"
	"github.com/veho-technologies/tech-execution-planning/internal/api/router"
	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/linear"
	"github.com/veho-technologies/tech-execution-planning/internal/repository"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/cache"
	"github.com/veho-technologies/tech-execution-planning/pkg/database"
	applogger "github.com/veho-technologies/tech-execution-planning/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "tep-server",
		Short:        "Tech execution planning API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (the default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(configPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "init-quarters <start-year> <end-year>",
		Short: "Seed calendar quarters and federal holidays for a year range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitQuarters(configPath, args[0], args[1])
		},
	})

	return root
}

// bootstrap loads .env, config, logger and the database. Every subcommand
// starts here.
func bootstrap(configPath string) (*config.Config, *zap.Logger, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	cleanup := func() {
		_ = logger.Sync()
	}
	return cfg, logger, cleanup, nil
}

func runServe(configPath string) error {
	cfg, logger, cleanup, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting server",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Error("database connection failed", zap.Error(err))
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Error("migrations failed", zap.Error(err))
		return err
	}

	// Redis is optional. A connection failure degrades to uncached Linear
	// lookups rather than blocking startup.
	cacheClient, err := cache.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, linear responses will not be cached", zap.Error(err))
		cacheClient = nil
	}
	defer cacheClient.Close()

	linearClient := linear.NewClient(&cfg.Linear, cacheClient, logger)

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, linearClient, logger)
	h := handler.NewHandler(cfg, svc, db)
	engine := router.Setup(cfg, h, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func runMigrate(configPath string) error {
	cfg, logger, cleanup, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, logger)
}

func runInitQuarters(configPath, startArg, endArg string) error {
	startYear, err := strconv.Atoi(startArg)
	if err != nil {
		return fmt.Errorf("start year %q is not a number", startArg)
	}
	endYear, err := strconv.Atoi(endArg)
	if err != nil {
		return fmt.Errorf("end year %q is not a number", endArg)
	}

	cfg, logger, cleanup, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return err
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, linear.NewClient(&cfg.Linear, nil, logger), logger)

	result, err := svc.Quarter.InitYears(context.Background(), &dto.InitQuartersRequest{
		StartYear: startYear,
		EndYear:   endYear,
	})
	if err != nil {
		return err
	}

	logger.Info("quarters initialized",
		zap.Int("created", result.QuartersCreated),
		zap.Strings("skipped", result.QuartersSkipped),
		zap.Int("holidays", result.HolidaysCreated),
	)
	return nil
}
