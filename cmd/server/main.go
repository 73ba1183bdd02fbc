package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/salesbridge/backend/internal/application/catalog"
	channelapp "github.com/salesbridge/backend/internal/application/channel"
	mappingapp "github.com/salesbridge/backend/internal/application/mapping"
	refreshapp "github.com/salesbridge/backend/internal/application/refresh"
	reportapp "github.com/salesbridge/backend/internal/application/report"
	"github.com/salesbridge/backend/internal/infrastructure/cache"
	"github.com/salesbridge/backend/internal/infrastructure/config"
	"github.com/salesbridge/backend/internal/infrastructure/event"
	"github.com/salesbridge/backend/internal/infrastructure/logger"
	"github.com/salesbridge/backend/internal/infrastructure/persistence"
	"github.com/salesbridge/backend/internal/interfaces/http/handler"
	"github.com/salesbridge/backend/internal/interfaces/http/middleware"
	"github.com/salesbridge/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SalesBridge API",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	linkRepo := persistence.NewGormMasterBoxLinkRepository(db.DB)
	ruleRepo := persistence.NewGormRuleRepository(db.DB)
	lineRepo := persistence.NewGormOrderLineRepository(db.DB)
	factRepo := persistence.NewGormFactRepository(db.DB)

	// Event bus and refresh state store
	eventBus := event.NewInMemoryEventBus(log)
	stateStore, err := cache.NewStateStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create refresh state store", zap.Error(err))
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, eventBus)
	masterBoxService := catalogapp.NewMasterBoxService(linkRepo, productRepo, eventBus)
	ruleService := mappingapp.NewRuleService(ruleRepo, productRepo, linkRepo, eventBus)
	ingestionService := channelapp.NewIngestionService(lineRepo, log)
	refreshService := refreshapp.NewService(
		productRepo, linkRepo, ruleRepo, lineRepo, factRepo,
		stateStore, cfg.Refresh, log)
	reportService := reportapp.NewService(factRepo)

	// Configuration changes mark the resolution snapshot dirty so the
	// next incremental refresh escalates to a full rebuild.
	dirtyHandler := refreshapp.NewConfigDirtyHandler(stateStore, log)
	if err := dirtyHandler.Subscribe(eventBus); err != nil {
		log.Fatal("Failed to subscribe config dirty handler", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewMasterBoxHandler(masterBoxService)).
		Register(handler.NewMappingRuleHandler(ruleService)).
		Register(handler.NewOrderLineHandler(ingestionService)).
		Register(handler.NewRefreshHandler(refreshService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewSystemHandler(db.DB)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
