package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ssp-overtime-api/api/swagger"
	"github.com/noah-isme/ssp-overtime-api/internal/handler"
	"github.com/noah-isme/ssp-overtime-api/internal/middleware"
	"github.com/noah-isme/ssp-overtime-api/internal/parser"
	"github.com/noah-isme/ssp-overtime-api/internal/portal"
	"github.com/noah-isme/ssp-overtime-api/internal/repository"
	"github.com/noah-isme/ssp-overtime-api/internal/service"
	"github.com/noah-isme/ssp-overtime-api/pkg/cache"
	"github.com/noah-isme/ssp-overtime-api/pkg/config"
	"github.com/noah-isme/ssp-overtime-api/pkg/database"
	"github.com/noah-isme/ssp-overtime-api/pkg/fetch"
	"github.com/noah-isme/ssp-overtime-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ssp-overtime-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ssp-overtime-api/pkg/middleware/requestid"
	"github.com/noah-isme/ssp-overtime-api/pkg/storage"
)

// @title SSP Overtime API
// @version 0.1.0
// @description Reconciles portal attendance anomalies with self-filed overtime submissions
// @BasePath /api/v1
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

	metrics := service.NewMetricsService()

	client := portal.NewClient(portal.ClientParams{
		Config: cfg.Portal,
		Logger: logr,
	})

	var snapshotStore service.SnapshotStore
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, snapshot warm store disabled", zap.Error(err))
		} else {
			snapshotStore = repository.NewSnapshotStore(redisClient, cfg.Sync.SnapshotStoreTTL)
		}
	}

	var historyRepo *repository.HistoryRepository
	if cfg.History.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("database unavailable, sync history disabled", zap.Error(err))
		} else {
			historyRepo = repository.NewHistoryRepository(db)
		}
	}

	calculator := service.NewOvertimeCalculator(cfg.Policy, logr)
	syncParams := service.SyncServiceParams{
		Fetcher:       client,
		Attendance:    parser.NewAttendanceParser(logr),
		Personal:      parser.NewPersonalParser(logr),
		Reconciler:    service.NewReconciler(calculator, logr),
		Pool:          fetch.NewPool(2, logr),
		Metrics:       metrics,
		SnapshotStore: snapshotStore,
		SyncConfig:    cfg.Sync,
		Logger:        logr,
	}
	if historyRepo != nil {
		syncParams.History = historyRepo
	}
	syncService := service.NewSyncService(syncParams)
	syncService.WarmStart(context.Background())

	exportStorage, err := storage.NewLocalStorage(cfg.Export.StorageDir)
	if err != nil {
		logr.Warn("export storage unavailable, saving disabled", zap.Error(err))
		exportStorage = nil
	}

	syncHandler := handler.NewSyncHandler(syncService)
	exportHandler := handler.NewExportHandler(handler.ExportHandlerParams{
		Service: syncService,
		Storage: exportStorage,
		Config:  cfg.Export,
		Logger:  logr,
	})
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Summary)

	api := r.Group(cfg.APIPrefix)
	{
		overtime := api.Group("/overtime")
		{
			overtime.GET("/snapshot", syncHandler.GetSnapshot)
			overtime.GET("/records", syncHandler.ListRecords)
			overtime.GET("/records/:year/:month/:day", syncHandler.GetRecord)
			overtime.GET("/statistics", syncHandler.GetStatistics)
			overtime.GET("/punches", syncHandler.GetPunchRecords)
			overtime.POST("/status/refresh", syncHandler.RefreshStatus)
			overtime.DELETE("/cache", syncHandler.ClearCache)
			overtime.GET("/export", exportHandler.Export)
		}

		if historyRepo != nil {
			historyHandler := handler.NewHistoryHandler(historyRepo, cfg.History.Limit)
			api.GET("/history", historyHandler.List)
			api.GET("/history/latest", historyHandler.Latest)
		}
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "portal", cfg.Portal.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
