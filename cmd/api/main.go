package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/zizouhuweidi/trivia/internal/cache"
	"github.com/zizouhuweidi/trivia/internal/config"
	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/logger"
	"github.com/zizouhuweidi/trivia/internal/metrics"
	"github.com/zizouhuweidi/trivia/internal/query"
	"github.com/zizouhuweidi/trivia/internal/repository/memory"
	"github.com/zizouhuweidi/trivia/internal/repository/postgres"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logr.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize catalog store
	store, closeStore, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("Failed to initialize catalog store", zap.Error(err))
	}
	defer closeStore()

	// Initialize websocket hub
	hub := websocket.NewHub(logr)
	go hub.Run(ctx)

	seed := cfg.Catalog.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Initialize services
	m := metrics.New()
	catalogService := service.NewCatalogService(store, cfg.Catalog, query.NewRand(seed), hub, m, logr)

	// Initialize handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	wsHandler := handler.NewWebSocketHandler(hub)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewErrorHandler(logr)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(m.Middleware())
	e.Use(requestLogger(logr))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	if cfg.RateLimit.RequestsPerSecond > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
				Burst:     cfg.RateLimit.Burst,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	// Routes
	catalogHandler.Register(e.Group(""))
	catalogHandler.Register(e.Group("/api"))

	// WebSocket route
	e.GET("/ws", wsHandler.HandleWebSocket)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"store":   cfg.Store.Driver,
			"clients": hub.ClientCount(),
		})
	})

	e.GET("/metrics", m.Handler())

	// Start server
	go func() {
		logr.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logr.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logr.Error("Server forced to shutdown", zap.Error(err))
	}
}

// openStore builds the configured catalog store and returns its cleanup
func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (domain.CatalogStore, func(), error) {
	if cfg.Store.Driver == config.StoreMemory {
		logr.Info("Using in-memory catalog store")
		return memory.NewCatalogStore(memory.DefaultCategories(), memory.SeedQuestions()), func() {}, nil
	}

	if err := database.Migrate(cfg.Database); err != nil {
		return nil, nil, err
	}

	pool, err := database.ConnectPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	var store domain.CatalogStore = postgres.NewCatalogRepository(pool)
	if !cfg.Redis.Enabled {
		return store, pool.Close, nil
	}

	redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		// The cache is optional; serve straight from Postgres.
		logr.Warn("Redis unavailable, category cache disabled", zap.Error(err))
		return store, pool.Close, nil
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			logr.Warn("failed to close redis client", zap.Error(err))
		}
		pool.Close()
	}
	// Migrations may have changed the categories since the last run
	categoryCache := cache.NewCategoryCache(store, redisClient, cfg.Redis.CacheTTL, logr)
	if err := categoryCache.Invalidate(ctx); err != nil {
		logr.Warn("failed to reset category cache", zap.Error(err))
	}
	return categoryCache, cleanup, nil
}

func requestLogger(logr *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				logr.Warn("request", fields...)
				return nil
			}
			logr.Info("request", fields...)
			return nil
		},
	})
}
