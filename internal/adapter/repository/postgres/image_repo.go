package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

type ImageRepo struct {
	pool *pgxpool.Pool
}

func NewImageRepo(pool *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{pool: pool}
}

func (r *ImageRepo) Create(ctx context.Context, image *entity.Image) error {
	variants, err := json.Marshal(nonNil(image.Variants))
	if err != nil {
		return fmt.Errorf("encoding variants: %w", err)
	}

	var source []byte
	if image.Source != nil {
		if source, err = json.Marshal(image.Source); err != nil {
			return fmt.Errorf("encoding source: %w", err)
		}
	}

	query := `
		INSERT INTO images (id, status, created_at, source, variants)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.pool.Exec(ctx, query, image.ID, string(image.Status), image.CreatedAt, source, variants)
	if err != nil {
		return fmt.Errorf("inserting image: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetByID(ctx context.Context, id string) (*entity.Image, error) {
	query := `
		SELECT id, status, created_at, source, variants
		FROM images
		WHERE id = $1
	`
	var (
		image    entity.Image
		status   string
		source   []byte
		variants []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&image.ID, &status, &image.CreatedAt, &source, &variants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("querying image: %w", err)
	}

	image.Status = entity.Status(status)
	image.CreatedAt = image.CreatedAt.UTC()

	if len(source) > 0 {
		var src entity.ObjectInfo
		if err := json.Unmarshal(source, &src); err != nil {
			return nil, fmt.Errorf("decoding source: %w", err)
		}
		image.Source = &src
	}

	image.Variants = map[string]entity.ObjectInfo{}
	if err := json.Unmarshal(variants, &image.Variants); err != nil {
		return nil, fmt.Errorf("decoding variants: %w", err)
	}

	return &image, nil
}

// MarkUploaded upserts the source. A PROCESSED record keeps its status.
func (r *ImageRepo) MarkUploaded(ctx context.Context, id string, source entity.ObjectInfo) error {
	src, err := json.Marshal(source)
	if err != nil {
		return fmt.Errorf("encoding source: %w", err)
	}

	query := `
		INSERT INTO images (id, status, source)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			status = CASE WHEN images.status = $4 THEN images.status ELSE EXCLUDED.status END
	`
	_, err = r.pool.Exec(ctx, query, id, string(entity.StatusUploaded), src, string(entity.StatusProcessed))
	if err != nil {
		return fmt.Errorf("marking image uploaded: %w", err)
	}
	return nil
}

// PutVariant merges one entry into variants and sets PROCESSED.
func (r *ImageRepo) PutVariant(ctx context.Context, id, size string, variant entity.ObjectInfo) error {
	v, err := json.Marshal(variant)
	if err != nil {
		return fmt.Errorf("encoding variant: %w", err)
	}

	query := `
		INSERT INTO images (id, status, variants)
		VALUES ($1, $2, jsonb_build_object($3::text, $4::jsonb))
		ON CONFLICT (id) DO UPDATE SET
			variants = images.variants || EXCLUDED.variants,
			status = EXCLUDED.status
	`
	_, err = r.pool.Exec(ctx, query, id, string(entity.StatusProcessed), size, v)
	if err != nil {
		return fmt.Errorf("putting variant %s: %w", size, err)
	}
	return nil
}

func nonNil(m map[string]entity.ObjectInfo) map[string]entity.ObjectInfo {
	if m == nil {
		return map[string]entity.ObjectInfo{}
	}
	return m
}
