package repository

import (
	"context"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// ImageRepository stores image records. Updates are attribute-level merges:
// applying the same update twice leaves the record unchanged, and no update
// moves Status backward.
type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	GetByID(ctx context.Context, id string) (*entity.Image, error)
	MarkUploaded(ctx context.Context, id string, source entity.ObjectInfo) error
	PutVariant(ctx context.Context, id, size string, variant entity.ObjectInfo) error
}

type ViewCounter interface {
	Increment(ctx context.Context, id, size string, pixels int64) (*entity.ViewStats, error)
}
