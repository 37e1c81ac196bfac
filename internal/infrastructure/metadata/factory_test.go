package metadata_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dynamorepo "github.com/marcos-nsantos/image-pipeline/internal/adapter/repository/dynamodb"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/config"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/metadata"
)

func TestNewImageRepository(t *testing.T) {
	awsCfg := aws.Config{Region: "us-east-1"}

	t.Run("defaults to dynamodb", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Pipeline.MetadataTable = "images"

		repo, closeFn, err := metadata.NewImageRepository(context.Background(), cfg, awsCfg, zap.NewNop())
		require.NoError(t, err)
		defer closeFn()

		assert.IsType(t, &dynamorepo.ImageRepository{}, repo)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Pipeline.MetadataDriver = "mongo"

		repo, _, err := metadata.NewImageRepository(context.Background(), cfg, awsCfg, zap.NewNop())
		assert.Nil(t, repo)
		assert.ErrorContains(t, err, `unknown metadata driver "mongo"`)
	})
}
