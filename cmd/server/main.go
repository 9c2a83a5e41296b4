package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plantmetrics/backend-go/internal/api"
	"github.com/plantmetrics/backend-go/internal/cache"
	"github.com/plantmetrics/backend-go/internal/config"
	"github.com/plantmetrics/backend-go/internal/forecast"
	"github.com/plantmetrics/backend-go/internal/inventory"
	"github.com/plantmetrics/backend-go/internal/metrics"
	"github.com/plantmetrics/backend-go/internal/repository"
	"github.com/plantmetrics/backend-go/internal/repository/postgres"
	"github.com/plantmetrics/backend-go/internal/service"
	"github.com/plantmetrics/backend-go/internal/storage"
	"github.com/plantmetrics/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.UseJSON()
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	summaryCache, err := cache.NewKpiSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("KPI summary cache unavailable, continuing without it")
		summaryCache = cache.NewNoopKpiSummaryCache()
	}
	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Forecast cache unavailable, continuing without it")
		forecastCache = cache.NewNoopForecastCache()
	}

	var exports storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		client, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Export storage unavailable, exports disabled")
		} else {
			exports = client
		}
	}

	metricRepo := repository.NewMetricRepository(db.DB)
	inventoryRepo := repository.NewInventoryRepository(db.DB)

	resolver := metrics.NewResolver(metrics.DefaultProfiles(), metrics.NewRegistry())
	planner := forecast.NewPlanner(forecast.DefaultConfig())
	seeder := inventory.NewSeeder(inventoryRepo, cfg.Seed.BatchSize)

	services := &api.Services{
		DashboardService: service.NewDashboardService(metricRepo, resolver, summaryCache),
		ForecastService:  service.NewForecastService(inventoryRepo, seeder, planner, forecastCache, exports),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
