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

	"github.com/freightline-erp/freightline-erp/internal/actor"
	"github.com/freightline-erp/freightline-erp/internal/app"
	"github.com/freightline-erp/freightline-erp/internal/auth"
	"github.com/freightline-erp/freightline-erp/internal/observability"
	"github.com/freightline-erp/freightline-erp/internal/payments"
	"github.com/freightline-erp/freightline-erp/internal/platform/cache"
	"github.com/freightline-erp/freightline-erp/internal/platform/db"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
	"github.com/freightline-erp/freightline-erp/internal/shared"
	"github.com/freightline-erp/freightline-erp/internal/trips"
	"github.com/freightline-erp/freightline-erp/internal/uploads"
	"github.com/freightline-erp/freightline-erp/jobs"
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
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "freightline_session", cfg.SessionTTL, cfg.IsProduction())

	metrics := observability.NewMetrics()

	invoker := rpc.NewPgInvoker(dbpool, logger)
	resolver := actor.NewResolver(invoker, logger)

	authRepo := auth.NewRepository(invoker)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, resolver)

	tripService := trips.NewService(invoker, resolver, metrics.ObserveFallback)
	tripHandler := trips.NewHandler(logger, tripService)

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
	notifier := jobs.NewNotifier(jobClient, logger)

	paymentService := payments.NewService(invoker, resolver, notifier, logger, metrics.ObserveFallback)
	paymentHandler := payments.NewHandler(logger, paymentService)

	presigner := uploads.NewPresignClient(cfg.WorkerBaseURL(), cfg.UploadAccessToken)
	viewCache := uploads.NewViewURLCache(redisClient, cfg.ViewURLTTL, cfg.ViewURLCapacity)
	uploadService := uploads.NewService(presigner, viewCache, invoker, resolver, logger, uploads.ServiceConfig{
		Transfer: uploads.TransferOptions{
			MaxAttempts:    cfg.UploadMaxAttempts,
			AttemptTimeout: cfg.UploadAttemptTimeout,
		},
		OnFallback: metrics.ObserveFallback,
	})
	uploadHandler := uploads.NewHandler(logger, uploadService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		AuthHandler:    authHandler,
		TripHandler:    tripHandler,
		PaymentHandler: paymentHandler,
		UploadHandler:  uploadHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
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
