package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/libreta-app/libreta/cmd/libreta/cli"
	"github.com/libreta-app/libreta/internal/alerts"
	"github.com/libreta-app/libreta/internal/analytics"
	analytichttp "github.com/libreta-app/libreta/internal/analytics/http"
	"github.com/libreta-app/libreta/internal/app"
	"github.com/libreta-app/libreta/internal/auth"
	"github.com/libreta-app/libreta/internal/cashflow"
	"github.com/libreta-app/libreta/internal/catalog"
	"github.com/libreta-app/libreta/internal/clients"
	"github.com/libreta-app/libreta/internal/ledger"
	"github.com/libreta-app/libreta/internal/observability"
	"github.com/libreta-app/libreta/internal/platform/cache"
	"github.com/libreta-app/libreta/internal/platform/db"
	"github.com/libreta-app/libreta/internal/pricing"
	"github.com/libreta-app/libreta/internal/shared"
	"github.com/libreta-app/libreta/jobs"
	"github.com/libreta-app/libreta/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}
	if len(os.Args) > 1 && os.Args[1] == "jobs" {
		runJobsCLI(os.Args[2:])
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

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

	sessionManager := shared.NewSessionManager(redisClient, "libreta_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	clientsRepo := clients.NewRepository(dbpool)
	clientsService := clients.NewService(clientsRepo)
	clientsHandler := clients.NewHandler(logger, clientsService)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	pricingService := pricing.NewService(pricing.Config{
		MinMarginPercent: cfg.MinMarginPercent,
		ClampToFloor:     cfg.MarginClamp,
	}, catalogService)
	pricingHandler := pricing.NewHandler(logger, pricingService)

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	if err := analyticsCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}

	ledgerRepo := ledger.NewRepository(dbpool)
	ledgerService := ledger.NewService(ledgerRepo, ledger.Config{
		PaymentEpsilon: cfg.PaymentEpsilon,
		RequireDueDate: cfg.RequireDueDate,
	}, analyticsCache, logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	cashflowRepo := cashflow.NewRepository(dbpool)
	cashflowService := cashflow.NewService(cashflowRepo, ledgerService, analyticsCache, logger)
	cashflowHandler := cashflow.NewHandler(logger, cashflowService)

	var pdfClient *report.Client
	if cfg.GotenbergURL != "" {
		pdfClient = report.NewClient(cfg.GotenbergURL)
	}

	analyticsService := analytics.NewService(ledgerService, cashflowService, authService, analyticsCache)
	analyticsHandler := analytichttp.NewHandler(logger, analyticsService, pdfClient)

	alertsService := alerts.NewService(ledgerService, alerts.Config{
		HorizonDays:     cfg.UpcomingHorizonDays,
		WeeklyProfitMin: cfg.WeeklyProfitMin,
	}, nil)
	alertsHandler := alerts.NewHandler(logger, alertsService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		AuthHandler:      authHandler,
		ClientsHandler:   clientsHandler,
		CatalogHandler:   catalogHandler,
		PricingHandler:   pricingHandler,
		LedgerHandler:    ledgerHandler,
		CashflowHandler:  cashflowHandler,
		AnalyticsHandler: analyticsHandler,
		AlertsHandler:    alertsHandler,
		JobsHandler:      jobsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// runJobsCLI handles `libreta jobs trigger <task>` and `libreta jobs stats`.
func runJobsCLI(args []string) {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	jc, err := cli.NewJobsCLI(cfg.RedisAddr)
	if err != nil {
		slog.Default().Error("init jobs cli", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = jc.Close() }()

	ctx := context.Background()
	switch {
	case len(args) >= 2 && args[0] == "trigger":
		info, err := jc.Trigger(ctx, args[1])
		if err != nil {
			slog.Default().Error("trigger job", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Printf("enqueued %s id=%s queue=%s\n", args[1], info.ID, info.Queue)
	case len(args) >= 1 && args[0] == "stats":
		stats, err := jc.InspectQueue(ctx)
		if err != nil {
			slog.Default().Error("inspect queue", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Printf("queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
			stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
	default:
		fmt.Println("usage: libreta jobs trigger <task> | libreta jobs stats")
		os.Exit(2)
	}
}
