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

	"github.com/vapeshop/storefront/internal/application/storefront"
	"github.com/vapeshop/storefront/internal/domain/shared/valueobject"
	"github.com/vapeshop/storefront/internal/infrastructure/catalogfile"
	"github.com/vapeshop/storefront/internal/infrastructure/config"
	"github.com/vapeshop/storefront/internal/infrastructure/logger"
	"github.com/vapeshop/storefront/internal/infrastructure/persistence"
	"github.com/vapeshop/storefront/internal/interfaces/http/handler"
	"github.com/vapeshop/storefront/internal/interfaces/http/middleware"
	"github.com/vapeshop/storefront/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	// Open local storage for cart snapshots
	db, err := persistence.NewDatabase(cfg.Store.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open local storage", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Load the immutable product catalog
	store, err := catalogfile.Load(cfg.Store.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}
	log.Info("Catalog loaded",
		zap.String("path", cfg.Store.CatalogPath),
		zap.Int("products", store.Len()))

	// Build the storefront session
	minimumOrder := valueobject.NewMoneyBRL(cfg.Store.MinimumOrderDecimal())
	cartRepo := persistence.NewGormCartRepository(db.DB, log)
	service := storefront.NewService(
		context.Background(),
		store,
		cartRepo,
		log,
		minimumOrder,
		cfg.Store.CartStorageKey,
	)

	// Set up HTTP presentation layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.Recovery(log),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: middleware.DefaultCORSConfig().AllowMethods,
			AllowHeaders: middleware.DefaultCORSConfig().AllowHeaders,
		}),
	)

	router.NewRouter(engine).
		Register(handler.NewStorefrontHandler(service)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
