// Package metadata selects the image record store.
package metadata

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository"
	dynamorepo "github.com/marcos-nsantos/image-pipeline/internal/adapter/repository/dynamodb"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/database"
)

// NewImageRepository returns the store for the configured driver and a
// function that releases its connections.
func NewImageRepository(ctx context.Context, cfg *config.Config, awsCfg aws.Config, logger *zap.Logger) (repository.ImageRepository, func(), error) {
	switch cfg.Pipeline.MetadataDriver {
	case config.MetadataDriverDynamo, "":
		logger.Info("using dynamodb metadata store", zap.String("table", cfg.Pipeline.MetadataTable))
		return dynamorepo.NewImageRepository(dynamodb.NewFromConfig(awsCfg), cfg.Pipeline.MetadataTable), func() {}, nil

	case config.MetadataDriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, pool, cfg.Database.MigrationsPath); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres metadata store", zap.String("database", cfg.Database.Name))
		return postgres.NewImageRepo(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown metadata driver %q", cfg.Pipeline.MetadataDriver)
	}
}
