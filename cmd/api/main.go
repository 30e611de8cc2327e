package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"go.uber.org/zap"

	"auravo-quiz/internal/adapter"
	"auravo-quiz/internal/cache"
	"auravo-quiz/internal/config"
	"auravo-quiz/internal/database"
	"auravo-quiz/internal/handler"
	"auravo-quiz/internal/logger"
	"auravo-quiz/internal/middleware"
	"auravo-quiz/internal/ratelimit"
	"auravo-quiz/internal/repository"
	"auravo-quiz/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var sessions *service.AnswerSessionCache
	var cacheAdapter *adapter.RedisCacheAdapter
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		sessions = service.NewAnswerSessionCache(cacheAdapter)
	}

	// Both backends answered once at startup; fail fast on a broken deploy.
	pings, pingCtx := errgroup.WithContext(ctx)
	pings.Go(func() error { return db.PingContext(pingCtx) })
	if cacheAdapter != nil {
		pings.Go(func() error { return cacheAdapter.Ping(pingCtx) })
	}
	if err := pings.Wait(); err != nil {
		log.Fatal("startup health check failed", zap.Error(err))
	}

	tokens, err := service.NewUpdateTokenService(cfg.UpdateToken)
	if err != nil {
		log.Fatal("failed to initialize update tokens", zap.Error(err))
	}

	submissionService := service.NewSubmissionService(
		repository.NewSubmissionRepository(db),
		tokens,
		sessions,
		ratelimit.NewFixedWindow(cfg.RateLimit.SubmitLimit, cfg.RateLimit.WindowLength),
		ratelimit.NewFixedWindow(cfg.RateLimit.UpdateLimit, cfg.RateLimit.WindowLength),
		log,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	handler.NewQuizHandler(submissionService, cfg.Quiz.ActiveVersion).RegisterRoutes(app)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("server listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
