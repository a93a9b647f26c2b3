package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mamadbah2/volaille/internal/analytics"
	"github.com/mamadbah2/volaille/internal/config"
	"github.com/mamadbah2/volaille/internal/repository/mongodb"
	"github.com/mamadbah2/volaille/internal/repository/sheets"
	"github.com/mamadbah2/volaille/internal/scheduler"
	"github.com/mamadbah2/volaille/internal/server/handlers"
	"github.com/mamadbah2/volaille/internal/server/router"
	statssvc "github.com/mamadbah2/volaille/internal/service/stats"
	"github.com/mamadbah2/volaille/pkg/clients/notify"
	"github.com/mamadbah2/volaille/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// The analytics cache is optional; a miss or a dead Redis never blocks a
	// request, so a failed ping only downgrades to direct computation.
	var cache *analytics.Cache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			baseLogger.Warn("redis unreachable, analytics cache disabled", zap.Error(err))
			_ = redisClient.Close()
		} else {
			cache = analytics.NewCache(redisClient, cfg.Redis.CacheTTL, baseLogger.Named("cache"))
			baseLogger.Info("analytics cache enabled", zap.Duration("ttl", cfg.Redis.CacheTTL))
		}
		cancel()
	}

	statsService := statssvc.NewService(mongoRepo, cache, cfg.Pricing.EggUnitPrice, baseLogger.Named("svc.stats"))

	var sheetsRepo sheets.Repository
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	}

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("report webhook enabled")
	}

	statsHandler := handlers.NewStatsHandler(statsService, baseLogger.Named("handlers.stats"))
	engine := router.New(statsHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Reporting, statsService, mongoRepo, sheetsRepo, notifier, baseLogger.Named("scheduler"))
	if len(cfg.Reporting.FarmIDs) > 0 {
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("no farms configured for daily snapshots, scheduler idle")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
