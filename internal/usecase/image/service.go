package image

import (
	"context"
	"fmt"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/repository"
	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/ids"
)

type Service struct {
	repo         repository.ImageRepository
	defaultSizes []string
}

func NewService(repo repository.ImageRepository, defaultSizes []string) *Service {
	return &Service{repo: repo, defaultSizes: defaultSizes}
}

// View is an image record plus the default sizes it still lacks. A record
// can be PROCESSED while PendingSizes is non-empty.
type View struct {
	Image        *entity.Image
	PendingSizes []string
}

func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	if !ids.IsValid(id) {
		return nil, domain.ErrInvalidImageID
	}

	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}

	return &View{
		Image:        img,
		PendingSizes: img.PendingSizes(s.defaultSizes),
	}, nil
}
