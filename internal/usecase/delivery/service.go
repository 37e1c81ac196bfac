package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/valueobject"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/ids"
)

// SizeOriginal addresses the uploaded source instead of a variant.
const SizeOriginal = "original"

type Service struct {
	repo    repository.ImageRepository
	storage storage.ObjectStorage
	counter repository.ViewCounter
	expiry  time.Duration
	logger  *zap.Logger
}

// NewService accepts a nil counter; views are then not tracked.
func NewService(
	repo repository.ImageRepository,
	objectStorage storage.ObjectStorage,
	counter repository.ViewCounter,
	expiry time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:    repo,
		storage: objectStorage,
		counter: counter,
		expiry:  expiry,
		logger:  logger.With(zap.String("component", "delivery")),
	}
}

type Redirect struct {
	URL     string
	ImageID string
	Size    string
	Stats   *entity.ViewStats
}

// Deliver accepts the size with or without a file extension, so
// /images/{id}/thumb.jpg and /images/{id}/thumb address the same variant.
func (s *Service) Deliver(ctx context.Context, id, size string) (*Redirect, error) {
	size = trimExtension(size)
	if !ids.IsValid(id) {
		return nil, domain.ErrInvalidImageID
	}
	if size != SizeOriginal && !valueobject.ValidSizeName(size) {
		return nil, domain.ErrInvalidSizeName
	}

	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}

	obj, ok := lookup(img, size)
	if !ok {
		return nil, domain.ErrVariantNotFound
	}

	url, err := s.storage.PresignDownload(ctx, s.storage.Bucket(), obj.Key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presigning download: %w", err)
	}

	observability.RecordVariantView(size)

	return &Redirect{
		URL:     url,
		ImageID: id,
		Size:    size,
		Stats:   s.countView(ctx, id, size, obj),
	}, nil
}

func lookup(img *entity.Image, size string) (entity.ObjectInfo, bool) {
	if size == SizeOriginal {
		if img.Source == nil {
			return entity.ObjectInfo{}, false
		}
		return *img.Source, true
	}
	v, ok := img.Variants[size]
	return v, ok
}

// countView never fails the delivery; a counter error yields nil stats.
func (s *Service) countView(ctx context.Context, id, size string, obj entity.ObjectInfo) *entity.ViewStats {
	if s.counter == nil {
		return nil
	}

	stats, err := s.counter.Increment(ctx, id, size, int64(obj.Width)*int64(obj.Height))
	if err != nil {
		s.logger.Warn("incrementing view counter",
			zap.String("image_id", id),
			zap.String("size", size),
			zap.Error(err),
		)
		return nil
	}
	return stats
}

// trimExtension drops everything from the first dot. A leading dot is kept
// so "." and ".." still fail validation.
func trimExtension(size string) string {
	if i := strings.IndexByte(size, '.'); i > 0 {
		return size[:i]
	}
	return size
}
