package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"loan-amortizer/config"
	"loan-amortizer/domain"
	httpLayer "loan-amortizer/http"
	"loan-amortizer/repository"
	"loan-amortizer/scheduler"
	"loan-amortizer/service"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("starting loan amortizer",
		slog.String("config", *configPath),
		slog.Any("settings", cfg.Redacted()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server exited")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cache, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	curveService := service.NewCurveService(repository.NewCurveRepositoryMemory(), curveSources(cfg), logger)
	// Missing curve files only disable floating schedules until the next reload.
	if err := curveService.ReloadAll(ctx); err != nil {
		logger.Warn("initial curve load incomplete", slog.String("error", err.Error()))
	}

	scheduleService := service.NewScheduleService(curveService, cache, service.ScheduleConfig{
		Limits: service.Limits{
			MaxNotional:          cfg.Limits.MaxNotional,
			MaxRatePercent:       cfg.Limits.MaxRatePercent,
			MaxAmortizationYears: cfg.Limits.MaxAmortizationYears,
		},
		CacheTTL: cfg.Cache.TTL.Duration,
	}, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window.Duration)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(
		httpLayer.NewScheduleHandler(scheduleService),
		httpLayer.NewCurveHandler(curveService),
		httpLayer.Health(curveService),
		rateLimiter,
		logger,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  cfg.Server.IdleTimeout.Duration,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Curves.ReloadCron != "" && len(curveSources(cfg)) > 0 {
		reloader, err := scheduler.NewCurveReloader(cfg.Curves.ReloadCron, curveService, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return reloader.Run(gctx) })
	}

	return g.Wait()
}

// newCache returns the configured schedule cache and its close function.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.CacheRepository, func(), error) {
	if !strings.EqualFold(cfg.Cache.Backend, "redis") {
		return repository.NewMemoryCache(), func() {}, nil
	}

	rc, err := repository.NewRedisCache(ctx, repository.RedisCacheConfig{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		MaxRetries: cfg.Redis.MaxRetries,
		TLSEnabled: cfg.Redis.TLSEnabled,
		KeyPrefix:  cfg.Redis.KeyPrefix,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("redis cache connected", slog.String("addr", cfg.Redis.Addr))
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("redis close failed", slog.String("error", err.Error()))
		}
	}, nil
}

func curveSources(cfg *config.Config) map[domain.CurveTerm]string {
	sources := make(map[domain.CurveTerm]string)
	if cfg.Curves.OneMonth != "" {
		sources[domain.OneMonthTerm] = cfg.Curves.OneMonth
	}
	if cfg.Curves.ThreeMonth != "" {
		sources[domain.ThreeMonthTerm] = cfg.Curves.ThreeMonth
	}
	return sources
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
