package ingest

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/message"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/queue"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

type Service struct {
	repo        repository.ImageRepository
	storage     storage.ObjectStorage
	processor   storage.ImageProcessor
	resizeQueue queue.Queue
	notifier    *events.Notifier
	sizes       []string
	logger      *zap.Logger
}

func NewService(
	repo repository.ImageRepository,
	objectStorage storage.ObjectStorage,
	processor storage.ImageProcessor,
	resizeQueue queue.Queue,
	notifier *events.Notifier,
	sizes []string,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:        repo,
		storage:     objectStorage,
		processor:   processor,
		resizeQueue: resizeQueue,
		notifier:    notifier,
		sizes:       sizes,
		logger:      logger.With(zap.String("component", "ingest")),
	}
}

// HandleBatch processes records in order and stops at the first failure.
func (s *Service) HandleBatch(ctx context.Context, batch message.FinalizationBatch) error {
	for i, rec := range batch.Records {
		if err := s.OnObjectFinalized(ctx, rec.Bucket, rec.Key); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// OnObjectFinalized records the source dimensions of a finished upload and
// fans out one resize task per configured size. rawKey is percent-encoded
// as delivered by the storage notification. Keys that are not originals
// are ignored.
func (s *Service) OnObjectFinalized(ctx context.Context, bucket, rawKey string) error {
	if bucket == "" || rawKey == "" {
		return fmt.Errorf("%w: bucket=%q key=%q", domain.ErrInvalidObjectKey, bucket, rawKey)
	}

	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		return fmt.Errorf("%w: decoding %q: %v", domain.ErrInvalidObjectKey, rawKey, err)
	}

	if !entity.IsOriginalKey(key) {
		s.logger.Debug("ignoring non-original key", zap.String("key", key))
		return nil
	}

	imageID := entity.ImageIDFromKey(key)
	if imageID == "" {
		s.logger.Warn("could not parse image id from key", zap.String("key", key))
		return nil
	}

	size, err := s.storage.HeadObject(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("reading object size: %w", err)
	}

	data, err := s.storage.GetObject(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("reading object: %w", err)
	}

	width, height, err := s.processor.Dimensions(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}

	source := entity.ObjectInfo{Key: key, Width: width, Height: height, Bytes: size}
	if err := s.repo.MarkUploaded(ctx, imageID, source); err != nil {
		return fmt.Errorf("marking image uploaded: %w", err)
	}

	for _, sz := range s.sizes {
		body, err := message.EncodeResizeTask(entity.NewResizeTask(imageID, bucket, key, sz))
		if err != nil {
			return err
		}
		if err := s.resizeQueue.Send(ctx, body); err != nil {
			return fmt.Errorf("enqueueing %s resize: %w", sz, err)
		}
	}

	s.logger.Info("image uploaded",
		zap.String("image_id", imageID),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("tasks", len(s.sizes)),
	)

	s.notifier.Emit(ctx, imageID, events.ActionUploaded)
	return nil
}
