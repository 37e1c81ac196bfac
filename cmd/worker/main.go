package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	adapterqueue "github.com/marcos-nsantos/image-pipeline/internal/adapter/queue"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
	eventsinfra "github.com/marcos-nsantos/image-pipeline/internal/infrastructure/events"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/metadata"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/queue"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/server"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/consumer"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/ingest"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/resize"
)

func main() {
	cfg, err := config.LoadProcess()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, "worker")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, err := config.Resolve(ctx, cfg, config.RoleWorker, logger)
	if err != nil {
		logger.Fatal("failed to resolve config", zap.Error(err))
	}
	pipeline := cfg.Pipeline

	imageRepo, closeRepo, err := metadata.NewImageRepository(ctx, cfg, awsCfg, logger)
	if err != nil {
		logger.Fatal("failed to create metadata store", zap.Error(err))
	}
	defer closeRepo()

	s3Storage := storage.NewS3Storage(awsCfg, pipeline.Bucket, cfg.AWS.UsePathStyle)
	imageProcessor := storage.NewImageProcessor()

	sqsClient := sqs.NewFromConfig(awsCfg)
	ingestQueue := queue.NewSQSQueue(sqsClient, pipeline.IngestQueueURL)
	resizeQueue := queue.NewSQSQueue(sqsClient, pipeline.ResizeQueueURL)

	publisher, err := eventsinfra.NewPublisher(pipeline, awsCfg)
	if err != nil {
		logger.Fatal("failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()
	notifier := events.NewNotifier(publisher, logger)

	ingestSvc := ingest.NewService(imageRepo, s3Storage, imageProcessor, resizeQueue, notifier, pipeline.DefaultSizes, logger)
	resizeSvc := resize.NewService(imageRepo, s3Storage, imageProcessor, pipeline.Bucket, logger)

	loop := consumer.NewLoop(resizeQueue, ingestQueue, ingestSvc, resizeSvc, consumer.Config{
		AckPolicy: consumer.AckPolicy(pipeline.AckPolicy),
		Receive: adapterqueue.ReceiveOptions{
			MaxMessages: pipeline.ReceiveMaxMessages,
			Wait:        pipeline.ReceiveWait,
			Visibility:  pipeline.VisibilityTimeout,
		},
		HeartbeatInterval: pipeline.HeartbeatInterval,
		ErrorBackoff:      pipeline.ErrorBackoff,
	}, logger)

	var metricsSrv *server.Server
	if cfg.Metrics.Port > 0 {
		metricsSrv = server.NewMetricsServer(cfg.Metrics.Port, logger)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		logger.Info("stop requested", zap.String("signal", sig.String()))
		loop.Stop()
		// Aborts a pending long poll; running handlers are not affected.
		cancel()
	}()

	loop.Run(ctx)

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(context.Background()); err != nil {
			logger.Error("metrics server shutdown error", zap.Error(err))
		}
	}

	logger.Info("worker stopped")
}
