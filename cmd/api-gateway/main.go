package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/horarium/timetable-api/api/swagger"
	"github.com/horarium/timetable-api/internal/handler"
	"github.com/horarium/timetable-api/internal/middleware"
	"github.com/horarium/timetable-api/internal/repository"
	"github.com/horarium/timetable-api/internal/service"
	"github.com/horarium/timetable-api/pkg/cache"
	"github.com/horarium/timetable-api/pkg/config"
	"github.com/horarium/timetable-api/pkg/logger"
	corsmiddleware "github.com/horarium/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/horarium/timetable-api/pkg/middleware/requestid"
	"github.com/horarium/timetable-api/pkg/storage"
)

// @title Horarium Timetable API
// @version 0.1.0
// @description Personal class-schedule generator
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it runs are simply recomputed.
	var redisClient *redis.Client
	var cacheRepo repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, memoization disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewRedisCacheRepository(redisClient)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, cfg.Cache.TTL, metrics, logr)
	catalogSvc := service.NewCatalogService(cfg.Catalog.TTL, logr)
	scheduleSvc := service.NewScheduleService(catalogSvc, cacheSvc, metrics, validate, cfg.Engine, logr)

	var exportSvc service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Fatal("export storage init failed", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(scheduleSvc, metrics, store, signer, service.ExportServiceConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
		}, logr)
		exportSvc.Start(ctx)
		defer exportSvc.Stop()
	}

	catalogHandler := handler.NewCatalogHandler(catalogSvc, cfg.Catalog.MaxUploadBytes)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, pinger(redisClient))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/catalogs", catalogHandler.Upload)
		api.GET("/catalogs/:id", catalogHandler.Get)
		api.GET("/catalogs/:id/courses", catalogHandler.Courses)
		api.GET("/catalogs/:id/teachers", catalogHandler.Teachers)

		api.POST("/schedules/generate", scheduleHandler.Generate)
		api.GET("/schedules/runs/:id", scheduleHandler.GetRun)
		api.GET("/schedules/runs/:id/combinations/:index/blocks", scheduleHandler.Blocks)
		api.POST("/schedules/runs/:id/exports", exportHandler.Create)

		api.GET("/exports/download", exportHandler.Download)
		api.GET("/exports/jobs/:jobId", exportHandler.Get)

		api.GET("/system/metrics", metricsHandler.System)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("shutdown incomplete", zap.Error(err))
	}
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func pinger(client *redis.Client) handler.Pinger {
	if client == nil {
		return nil
	}
	return redisPinger{client: client}
}
