package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"cms-admin/internal/cache"
	"cms-admin/internal/config"
	"cms-admin/internal/controllers"
	"cms-admin/internal/database"
	"cms-admin/internal/entities"
	"cms-admin/internal/logger"
	"cms-admin/internal/middleware"
	"cms-admin/internal/repository"
	"cms-admin/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, db, zl); err != nil {
			zl.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Redis cache (optional - continue without it if unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			zl.Warn("redis unavailable, continuing without cache", zap.Error(err))
			cacheClient = nil
		} else {
			defer cacheClient.Close()
			zl.Info("connected to redis cache", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	validator, err := service.NewValidator()
	if err != nil {
		zl.Fatal("failed to create validator", zap.Error(err))
	}

	// Initialize services
	articleService := service.NewArticleService(repository.NewArticleRepository(db), validator, cacheClient, cfg.CacheTTL)
	categoryService := service.NewCategoryService(repository.NewCategoryRepository(db), validator, cacheClient, cfg.CacheTTL)
	courseService := service.NewCourseService(repository.NewCourseRepository(db), validator, cacheClient, cfg.CacheTTL)
	userService := service.NewUserService(repository.NewUserRepository(db), validator, cacheClient, cfg.CacheTTL)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(zl), middleware.Recovery())

	// Health check endpoint (no rate limiting)
	router.GET("/health", controllers.NewHealthController(db).Check)

	limiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	admin := router.Group("/admin")
	admin.Use(limiter.LimitMiddleware())
	{
		controllers.NewResourceController[entities.Article](articleService, controllers.Articles).Register(admin)
		controllers.NewResourceController[entities.Category](categoryService, controllers.Categories).Register(admin)
		controllers.NewResourceController[entities.Course](courseService, controllers.Courses).Register(admin)
		controllers.NewResourceController[entities.User](userService, controllers.Users).Register(admin)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
