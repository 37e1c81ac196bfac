package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

const (
	fieldViews        = "views"
	fieldPixelsViewed = "pixelsViewed"
)

// ViewCounter keeps one hash per (image, size) pair.
type ViewCounter struct {
	client redis.Cmdable
}

func NewViewCounter(client redis.Cmdable) *ViewCounter {
	return &ViewCounter{client: client}
}

func Key(id, size string) string {
	return fmt.Sprintf("views:%s:%s", id, size)
}

func (c *ViewCounter) Increment(ctx context.Context, id, size string, pixels int64) (*entity.ViewStats, error) {
	key := Key(id, size)

	pipe := c.client.TxPipeline()
	views := pipe.HIncrBy(ctx, key, fieldViews, 1)
	pixelsViewed := pipe.HIncrBy(ctx, key, fieldPixelsViewed, pixels)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("incrementing view counters: %w", err)
	}

	return &entity.ViewStats{
		Views:        views.Val(),
		PixelsViewed: pixelsViewed.Val(),
	}, nil
}
