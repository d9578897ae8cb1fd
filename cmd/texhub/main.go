package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/textilehub/textilehub/internal/app"
	"github.com/textilehub/textilehub/internal/dashboard"
	"github.com/textilehub/textilehub/internal/ingest"
	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/observability"
	"github.com/textilehub/textilehub/internal/platform/cache"
	"github.com/textilehub/textilehub/internal/platform/db"
	"github.com/textilehub/textilehub/internal/platform/gotenberg"
	"github.com/textilehub/textilehub/internal/reports"
	"github.com/textilehub/textilehub/internal/reports/export"
	reporthttp "github.com/textilehub/textilehub/internal/reports/http"
	"github.com/textilehub/textilehub/internal/sauda"
	"github.com/textilehub/textilehub/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	invoiceRepo := invoice.NewRepository(dbpool)
	invoiceService := invoice.NewService(invoiceRepo)
	invoiceHandler := invoice.NewHandler(logger, invoiceService)

	saudaRepo := sauda.NewRepository(dbpool)
	saudaService := sauda.NewService(saudaRepo)
	saudaHandler := sauda.NewHandler(logger, saudaService)

	dashboardService := dashboard.NewService(invoiceRepo, saudaRepo)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	if err := reportCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}
	reportService := reports.NewService(reports.Store{Invoices: invoiceRepo, Orders: saudaRepo}, reportCache)

	var renderer export.Renderer
	if cfg.GotenbergURL != "" {
		pdfClient := gotenberg.NewClient(cfg.GotenbergURL)
		if err := pdfClient.Ping(ctx); err != nil {
			logger.Warn("gotenberg ping", slog.Any("error", err))
		}
		renderer = pdfClient
	}
	reportHandler := reporthttp.NewHandler(logger, reportService, renderer)

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

	ingestService := ingest.NewService(logger, invoiceRepo, saudaRepo, reportCache, jobClient)
	ingestHandler := ingest.NewHandler(logger, ingestService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		InvoiceHandler:   invoiceHandler,
		SaudaHandler:     saudaHandler,
		DashboardHandler: dashboardHandler,
		ReportHandler:    reportHandler,
		IngestHandler:    ingestHandler,
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
