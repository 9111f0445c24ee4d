package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/formaplan/formaplan-api/api/swagger"
	"github.com/formaplan/formaplan-api/internal/handler"
	"github.com/formaplan/formaplan-api/internal/middleware"
	"github.com/formaplan/formaplan-api/internal/repository"
	"github.com/formaplan/formaplan-api/internal/service"
	"github.com/formaplan/formaplan-api/pkg/cache"
	"github.com/formaplan/formaplan-api/pkg/config"
	"github.com/formaplan/formaplan-api/pkg/database"
	"github.com/formaplan/formaplan-api/pkg/export"
	"github.com/formaplan/formaplan-api/pkg/logger"
	corsmiddleware "github.com/formaplan/formaplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/formaplan/formaplan-api/pkg/middleware/requestid"
)

// @title FormaPlan API
// @version 1.0.0
// @description Training room planning and assignment optimization
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Planning.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, planning cache disabled", "error", err)
			cfg.Planning.CacheEnabled = false
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	defer cacheRepo.Close()

	metricsSvc := service.NewMetricsService()

	roomRepo := repository.NewRoomRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	roomSvc := service.NewRoomService(roomRepo, cacheRepo, nil, logr)
	trainingSvc := service.NewTrainingService(trainingRepo, cacheRepo, nil, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, trainingRepo, roomRepo, cacheRepo, nil, logr)
	optimizerSvc := service.NewOptimizerService(roomRepo, trainingRepo, assignmentRepo, metricsSvc, logr, cfg.Optimizer)
	planningSvc := service.NewPlanningService(assignmentRepo, cacheRepo, metricsSvc, logr, cfg.Planning)

	roomHandler := handler.NewRoomHandler(roomSvc)
	trainingHandler := handler.NewTrainingHandler(trainingSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	optimizerHandler := handler.NewOptimizerHandler(optimizerSvc)
	planningHandler := handler.NewPlanningHandler(planningSvc, export.NewCSVExporter(), export.NewPDFExporter())
	monitoringHandler := handler.NewMonitoringHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", monitoringHandler.Health)
	r.GET("/ready", monitoringHandler.Ready)
	r.GET("/metrics", monitoringHandler.Prometheus)
	r.GET("/metrics/summary", monitoringHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/salles", roomHandler.List)
		api.POST("/salles", roomHandler.Create)
		api.GET("/salles/:id", roomHandler.Get)
		api.PUT("/salles/:id", roomHandler.Update)
		api.DELETE("/salles/:id", roomHandler.Delete)

		api.GET("/formations", trainingHandler.List)
		api.POST("/formations", trainingHandler.Create)
		api.GET("/formations/:id", trainingHandler.Get)
		api.PUT("/formations/:id", trainingHandler.Update)
		api.DELETE("/formations/:id", trainingHandler.Delete)

		api.GET("/affectations", assignmentHandler.List)
		api.POST("/affectations", assignmentHandler.Create)

		api.POST("/optimisation", optimizerHandler.Run)

		api.GET("/planning", planningHandler.Calendar)
		api.GET("/planning/export", planningHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
