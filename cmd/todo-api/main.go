package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rishavm/todoapi/internal/auth"
	"github.com/rishavm/todoapi/internal/config"
	"github.com/rishavm/todoapi/internal/database"
	"github.com/rishavm/todoapi/internal/events"
	"github.com/rishavm/todoapi/internal/handlers"
	"github.com/rishavm/todoapi/internal/logger"
	"github.com/rishavm/todoapi/internal/middleware"
	"github.com/rishavm/todoapi/internal/redis"
	"github.com/rishavm/todoapi/internal/service"
	"github.com/rishavm/todoapi/internal/storage"
)

func main() {
	log := logger.New("todo-api")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if cfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN is required")
	}

	db, err := database.NewManager(ctx, database.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to apply schema: %v", err)
	}

	tokenSecret := cfg.Auth.TokenSecret
	if tokenSecret == "" {
		tokenSecret = "change-me-in-production"
		log.Warn("TOKEN_SECRET not set, using default (insecure for production)")
	}

	// Redis backs the rate limiter and the activity stream; both degrade to
	// no-ops when it is not configured.
	var limiter *middleware.RateLimiter
	var producer *events.Producer
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		limiter = middleware.NewRateLimiter(redisClient.Raw(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
		producer = events.NewProducer(redisClient.Raw(), cfg.Redis.StreamName)
	} else {
		log.Warn("REDIS_ADDR not set, rate limiting and activity events disabled")
	}

	tokenManager := auth.NewTokenManager(tokenSecret, cfg.Auth.TokenTTL)
	userStore := storage.NewPostgresUserStore(db)
	todoStore := storage.NewPostgresTodoStore(db)

	userService := service.NewUserService(userStore, tokenManager)
	todoService := service.NewTodoService(todoStore, producer)

	gate := middleware.NewAuthMiddleware(userService)
	authHandler := handlers.NewAuthHandler(userService)
	todoHandler := handlers.NewTodoHandler(todoService)

	mux := handlers.NewRouter(authHandler, todoHandler, gate, limiter)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: mux,
	}

	go func() {
		log.Info("Todo API listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down todo API...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown: %v", err)
	}
	log.Info("Todo API stopped")
}
