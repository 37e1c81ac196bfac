package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/marcos-nsantos/image-pipeline/docs"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository"
	redisrepo "github.com/marcos-nsantos/image-pipeline/internal/adapter/repository/redis"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/cache"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
	eventsinfra "github.com/marcos-nsantos/image-pipeline/internal/infrastructure/events"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/metadata"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/server"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/delivery"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/image"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

//	@title			Image Pipeline API
//	@version		1.0
//	@description	Upload grants, image status and variant delivery.
//	@BasePath		/api/v1
func main() {
	cfg, err := config.LoadProcess()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, "api")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	awsCfg, err := config.Resolve(ctx, cfg, config.RoleAPI, logger)
	if err != nil {
		logger.Fatal("failed to resolve config", zap.Error(err))
	}
	pipeline := cfg.Pipeline

	// Repositories
	imageRepo, closeRepo, err := metadata.NewImageRepository(ctx, cfg, awsCfg, logger)
	if err != nil {
		logger.Fatal("failed to create metadata store", zap.Error(err))
	}
	defer closeRepo()

	var viewCounter repository.ViewCounter
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, view counters and rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			viewCounter = redisrepo.NewViewCounter(redisClient)
			if cfg.RateLimit.Enabled {
				rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit, logger)
			}
		}
	}

	// Infrastructure services
	s3Storage := storage.NewS3Storage(awsCfg, pipeline.Bucket, cfg.AWS.UsePathStyle)

	publisher, err := eventsinfra.NewPublisher(pipeline, awsCfg)
	if err != nil {
		logger.Fatal("failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()
	notifier := events.NewNotifier(publisher, logger)

	// Use cases
	intakeSvc := intake.NewService(imageRepo, s3Storage, notifier, intake.Config{
		Bucket:         pipeline.Bucket,
		DefaultSizes:   pipeline.DefaultSizes,
		MaxUploadBytes: pipeline.MaxUploadBytes(),
		URLExpiry:      pipeline.URLExpiry,
	})
	imageSvc := image.NewService(imageRepo, pipeline.DefaultSizes)
	deliverySvc := delivery.NewService(imageRepo, s3Storage, viewCounter, pipeline.DownloadURLExpiry, logger)

	// Handlers
	uploadHandler := handler.NewUploadHandler(intakeSvc)
	imageHandler := handler.NewImageHandler(imageSvc, deliverySvc)

	// Router
	router := server.NewRouter(server.RouterConfig{
		UploadHandler:  uploadHandler,
		ImageHandler:   imageHandler,
		RateLimiter:    rateLimiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Name:            "api",
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
