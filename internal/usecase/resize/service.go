package resize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/valueobject"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
)

type Service struct {
	repo      repository.ImageRepository
	storage   storage.ObjectStorage
	processor storage.ImageProcessor
	bucket    string
	logger    *zap.Logger
}

// NewService uses bucket when a task does not name its own.
func NewService(
	repo repository.ImageRepository,
	objectStorage storage.ObjectStorage,
	processor storage.ImageProcessor,
	bucket string,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		storage:   objectStorage,
		processor: processor,
		bucket:    bucket,
		logger:    logger.With(zap.String("component", "resize")),
	}
}

func (s *Service) ProcessResizeTask(ctx context.Context, task entity.ResizeTask) error {
	if task.ImageID == "" || task.Key == "" {
		return fmt.Errorf("%w: image id and key are required", domain.ErrInvalidTask)
	}
	if !valueobject.ValidSizeName(task.Size) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSizeName, task.Size)
	}

	bucket := task.Bucket
	if bucket == "" {
		bucket = s.bucket
	}

	start := time.Now()

	data, err := s.storage.GetObject(ctx, bucket, task.Key)
	if err != nil {
		return fmt.Errorf("reading original: %w", err)
	}

	rendition, err := s.processor.Resize(data, task.Size)
	if err != nil {
		return fmt.Errorf("resizing %s: %w", task.Size, err)
	}

	dest := entity.VariantKey(task.ImageID, task.Size)
	if err := s.storage.PutObject(ctx, bucket, dest, rendition.Data, rendition.ContentType); err != nil {
		return fmt.Errorf("writing variant: %w", err)
	}

	variant := entity.ObjectInfo{
		Key:    dest,
		Width:  rendition.Width,
		Height: rendition.Height,
		Bytes:  int64(len(rendition.Data)),
	}
	if err := s.repo.PutVariant(ctx, task.ImageID, task.Size, variant); err != nil {
		return fmt.Errorf("recording variant: %w", err)
	}

	observability.ObserveResize(task.Size, time.Since(start).Seconds())
	s.logger.Info("generated variant",
		zap.String("image_id", task.ImageID),
		zap.String("size", task.Size),
		zap.Int("width", rendition.Width),
		zap.Int("height", rendition.Height),
	)
	return nil
}
