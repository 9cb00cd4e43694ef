package main

import (
	"context"
	"log"
	"time"

	"dockboard/internal/core/cache"
	"dockboard/internal/core/config"
	"dockboard/internal/core/logger"
	"dockboard/internal/core/server"
	lineadapter "dockboard/internal/features/lines/adapters"
	linehandler "dockboard/internal/features/lines/handler"
	lineservice "dockboard/internal/features/lines/service"
	truckadapter "dockboard/internal/features/trucks/adapters"
	truckhandler "dockboard/internal/features/trucks/handler"
	truckservice "dockboard/internal/features/trucks/service"
	"dockboard/internal/features/trucks/store"

	"go.uber.org/zap"
)

// @title Dockboard API
// @version 1.0
// @description This API serves a receiving dashboard for incoming trucks by integrating with the retail-ops system.
// @contact.name API Support
// @contact.email support@dockboard.local
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()

	// Select the cache backend. Redis when configured, otherwise an
	// in-process session cache.
	var sessionCache cache.Cache
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		sessionCache = redisCache
		l.Info("Redis cache connected")
	} else {
		sessionCache = cache.NewMemoryAdapter()
		l.Info("Using in-memory cache")
	}

	// Initialize the retail-ops adapter. A failed health check is logged but
	// not fatal: the dashboard can keep serving its last snapshot while the
	// upstream recovers.
	remote := truckadapter.NewRetailOpsAdapter(cfg.RemoteAPI)
	if err := remote.HealthCheck(ctx); err != nil {
		l.Warn("Retail-ops API health check failed", zap.Error(err))
	} else {
		l.Info("Retail-ops API connection verified")
	}

	// Initialize the truck store, refresher and mutation coordinator.
	truckStore := store.New()
	refresher := truckservice.NewRefresher(truckStore, remote, sessionCache)
	if err := refresher.WarmStart(ctx); err != nil {
		l.Info("No cached snapshot to warm start from", zap.Error(err))
	}
	coordinator := truckservice.NewCoordinator(truckStore, remote, cfg.RemoteAPI.UserID)
	truckHdl := truckhandler.NewTruckHandler(truckStore, refresher, coordinator)

	// Initialize line search.
	lineProvider := lineadapter.NewSearchAdapter(cfg.RemoteAPI)
	searchSvc := lineservice.NewSearchService(
		lineProvider,
		sessionCache,
		time.Duration(cfg.Search.DebounceMillis)*time.Millisecond,
		time.Duration(cfg.Search.CacheTTLSeconds)*time.Second,
	)
	lineHdl := linehandler.NewLineHandler(searchSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/incoming-trucks", truckHdl.ListTrucks)
	srv.App.Post("/incoming-trucks/:id/updates", truckHdl.SubmitUpdate)
	srv.App.Get("/po/lines/search", lineHdl.SearchLines)

	refresher.StartPolling(ctx, time.Duration(cfg.PollIntervalSeconds)*time.Second)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
