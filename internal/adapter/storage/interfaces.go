package storage

import (
	"context"
	"time"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

type ObjectStorage interface {
	Bucket() string
	PresignUpload(ctx context.Context, bucket, key string, maxBytes int64, expiry time.Duration) (*entity.UploadGrant, error)
	PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	HeadObject(ctx context.Context, bucket, key string) (int64, error)
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// Rendition is an encoded variant ready to be stored.
type Rendition struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string
}

type ImageProcessor interface {
	Dimensions(data []byte) (int, int, error)
	Resize(data []byte, size string) (*Rendition, error)
}
