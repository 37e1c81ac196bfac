package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/events"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/valueobject"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/ids"
)

type Config struct {
	Bucket         string
	DefaultSizes   []string
	MaxUploadBytes int64
	URLExpiry      time.Duration
}

type Service struct {
	repo     repository.ImageRepository
	storage  storage.ObjectStorage
	notifier *events.Notifier
	cfg      Config
	newID    func() string
	now      func() time.Time
}

func NewService(
	repo repository.ImageRepository,
	objectStorage storage.ObjectStorage,
	notifier *events.Notifier,
	cfg Config,
) *Service {
	return &Service{
		repo:     repo,
		storage:  objectStorage,
		notifier: notifier,
		cfg:      cfg,
		newID:    ids.New,
		now:      time.Now,
	}
}

type RequestInput struct {
	Sizes []string
}

type UploadResult struct {
	ImageID string
	Bucket  string
	Upload  *entity.UploadGrant
	Sizes   []string
}

// RequestUpload reserves an id, creates the PENDING record and returns a
// grant for a direct upload to images/{id}/original.
func (s *Service) RequestUpload(ctx context.Context, input RequestInput) (*UploadResult, error) {
	id := s.newID()
	key := entity.OriginalKey(id)

	grant, err := s.storage.PresignUpload(ctx, s.cfg.Bucket, key, s.cfg.MaxUploadBytes, s.cfg.URLExpiry)
	if err != nil {
		observability.RecordUploadRequest("error")
		return nil, fmt.Errorf("creating upload grant: %w", err)
	}

	sizes := valueobject.ResolveSizes(input.Sizes, s.cfg.DefaultSizes)

	if err := s.repo.Create(ctx, entity.NewImage(id, s.now())); err != nil {
		observability.RecordUploadRequest("error")
		return nil, fmt.Errorf("creating image record: %w", err)
	}

	s.notifier.Emit(ctx, id, events.ActionInit)
	observability.RecordUploadRequest("ok")

	return &UploadResult{
		ImageID: id,
		Bucket:  s.cfg.Bucket,
		Upload:  grant,
		Sizes:   sizes,
	}, nil
}
