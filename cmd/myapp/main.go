package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bookhive/order_picker_service/common/constants"
	"github.com/bookhive/order_picker_service/internal/app/handlers"
	"github.com/bookhive/order_picker_service/internal/app/middleware"
	"github.com/bookhive/order_picker_service/internal/cache"
	"github.com/bookhive/order_picker_service/internal/picker"
	redisclient "github.com/bookhive/order_picker_service/internal/redis"
	"github.com/bookhive/order_picker_service/internal/search"
	"github.com/bookhive/order_picker_service/internal/source"
)

var logger *zap.Logger

func main() {
	// Load environment variables from .env file (if it exists)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logger
	var err error
	if os.Getenv("ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	upstreamURL := os.Getenv("UPSTREAM_BASE_URL")
	if upstreamURL == "" {
		upstreamURL = "http://localhost:3000"
	}

	// Redis is optional: without it every session open hits the upstream
	// API directly.
	var snapshots *cache.Cache
	var redisConn *redisclient.Client
	if os.Getenv("REDIS_HOST") != "" {
		redisConn, err = redisclient.NewClient(redisclient.ConfigFromEnv(), logger)
		if err != nil {
			logger.Warn("Redis unavailable, running without snapshot cache", zap.Error(err))
		} else {
			snapshots = cache.NewCache(redisConn.GetClient(), constants.SnapshotCachePrefix)
			handlers.SetRedisHealth(redisConn.Healthy)
			defer redisConn.Close()
		}
	}

	pickerCfg := picker.Config{
		BookQuery: search.Options{EmptyQuery: search.MatchAll},
		UserQuery: search.Options{EmptyQuery: search.MatchAll},
	}
	if os.Getenv("FUZZY_SEARCH") == "true" {
		pickerCfg.BookQuery.Fuzzy = true
		pickerCfg.UserQuery.Fuzzy = true
	}

	registry := picker.NewRegistry(constants.SESSION_TTL_MINUTES * time.Minute)

	handlers.SetLogger(logger)
	handlers.SetRegistry(registry)
	handlers.SetPickerConfig(pickerCfg)
	handlers.SetSourceFactory(func(token string) picker.EntitySource {
		client := source.NewClient(upstreamURL, token)
		if snapshots == nil {
			return client
		}
		return source.NewCached(client, snapshots, constants.CACHE_TTL_MINUTES*time.Minute, logger)
	})

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go registry.StartSweeper(sweepCtx, time.Minute)

	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter()

	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", port), zap.String("upstream", upstreamURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// make changes for endpoints here
func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cache-Control", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(rate.Limit(20), 40)))
	{
		api.POST("/sessions", handlers.OpenSession)
		api.POST("/sessions/:id/reload", handlers.ReloadCatalogs)
		api.GET("/sessions/:id/books", handlers.SearchBooks)
		api.GET("/sessions/:id/users", handlers.SearchUsers)
		api.GET("/sessions/:id/selection", handlers.GetSelection)
		api.POST("/sessions/:id/selection", handlers.AddBook)
		api.DELETE("/sessions/:id/selection/:bookId", handlers.RemoveBook)
		api.PUT("/sessions/:id/customer", handlers.SelectCustomer)
		api.DELETE("/sessions/:id/customer", handlers.ClearCustomer)
		api.POST("/sessions/:id/submit", handlers.SubmitOrder)
		api.DELETE("/sessions/:id", handlers.CloseSession)
	}

	return router
}
