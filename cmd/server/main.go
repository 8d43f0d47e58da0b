package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	analysisapp "github.com/rebechilabs/tributalks/internal/application/analysis"
	"github.com/rebechilabs/tributalks/internal/infrastructure/auth"
	"github.com/rebechilabs/tributalks/internal/infrastructure/cache"
	"github.com/rebechilabs/tributalks/internal/infrastructure/config"
	"github.com/rebechilabs/tributalks/internal/infrastructure/logger"
	"github.com/rebechilabs/tributalks/internal/infrastructure/persistence"
	"github.com/rebechilabs/tributalks/internal/interfaces/http/handler"
	"github.com/rebechilabs/tributalks/internal/interfaces/http/middleware"
	"github.com/rebechilabs/tributalks/internal/interfaces/http/router"
)

var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TribuTalks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Benchmark cache
	cacheFactory := cache.NewBenchmarkCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log))
	benchmarkCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create benchmark cache", zap.Error(err))
	}
	defer func() {
		if err := benchmarkCache.Close(); err != nil {
			log.Error("Error closing benchmark cache", zap.Error(err))
		}
	}()

	// Repositories
	resultRepo := persistence.NewGormAnalysisResultRepository(db.DB)
	benchmarkRepo := cache.NewCachedBenchmarkRepository(
		persistence.NewGormBenchmarkRepository(db.DB),
		benchmarkCache,
	)

	// Application services
	analysisService := analysisapp.NewService(benchmarkRepo, resultRepo, log)

	// Token validation for the upstream-issued JWTs
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	benchmarkHandler := handler.NewBenchmarkHandler(analysisService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logging(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:        jwtService,
		SkipPaths:         []string{"/api/v1/health"},
		AllowUserIDHeader: cfg.App.Env == "development",
	}))
	r.Register(systemHandler)
	r.Register(analysisHandler)
	r.Register(benchmarkHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
