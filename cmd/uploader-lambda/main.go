package main

import (
	"context"
	"log"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/lambda"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
	eventsinfra "github.com/marcos-nsantos/image-pipeline/internal/infrastructure/events"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/metadata"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

func main() {
	cfg, err := config.LoadProcess()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, "uploader")
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

	imageRepo, closeRepo, err := metadata.NewImageRepository(ctx, cfg, awsCfg, logger)
	if err != nil {
		logger.Fatal("failed to create metadata store", zap.Error(err))
	}
	defer closeRepo()

	publisher, err := eventsinfra.NewPublisher(pipeline, awsCfg)
	if err != nil {
		logger.Fatal("failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	intakeSvc := intake.NewService(
		imageRepo,
		storage.NewS3Storage(awsCfg, pipeline.Bucket, cfg.AWS.UsePathStyle),
		events.NewNotifier(publisher, logger),
		intake.Config{
			Bucket:         pipeline.Bucket,
			DefaultSizes:   pipeline.DefaultSizes,
			MaxUploadBytes: pipeline.MaxUploadBytes(),
			URLExpiry:      pipeline.URLExpiry,
		},
	)

	awslambda.Start(lambda.NewUploadHandler(intakeSvc, logger).Handle)
}
