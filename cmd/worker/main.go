package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/libreta-app/libreta/internal/alerts"
	"github.com/libreta-app/libreta/internal/analytics"
	"github.com/libreta-app/libreta/internal/app"
	"github.com/libreta-app/libreta/internal/auth"
	"github.com/libreta-app/libreta/internal/cashflow"
	jobmetrics "github.com/libreta-app/libreta/internal/jobs"
	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/platform/cache"
	"github.com/libreta-app/libreta/internal/platform/db"
	"github.com/libreta-app/libreta/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	authService := auth.NewService(auth.NewRepository(pool))

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	if err := analyticsCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}

	ledgerService := ledger.NewService(ledger.NewRepository(pool), ledger.Config{
		PaymentEpsilon: cfg.PaymentEpsilon,
		RequireDueDate: cfg.RequireDueDate,
	}, analyticsCache, logger)

	cashflowService := cashflow.NewService(cashflow.NewRepository(pool), ledgerService, analyticsCache, logger)
	analyticsService := analytics.NewService(ledgerService, cashflowService, authService, analyticsCache)

	alertsService := alerts.NewService(ledgerService, alerts.Config{
		HorizonDays:     cfg.UpcomingHorizonDays,
		WeeklyProfitMin: cfg.WeeklyProfitMin,
	}, nil)

	metrics := jobmetrics.NewMetrics(nil)
	digestJob := jobs.NewAlertDigestJob(alertsService, authService, logger, metrics)
	warmupJob := jobs.NewAnalyticsWarmupJob(analyticsService, authService, logger, metrics)

	digestTask, err := jobs.NewAlertDigestTask(jobs.AlertDigestPayload{})
	if err != nil {
		logger.Error("build digest task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewAnalyticsWarmupTask(jobs.AnalyticsWarmupPayload{IncludeAdmin: true})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAlertDigest, Handler: digestJob.Handle},
			{Type: jobs.TaskAnalyticsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 7 * * *", Task: digestTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 6 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
