package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

func TestStatus_Advance(t *testing.T) {
	assert.Equal(t, entity.StatusUploaded, entity.StatusPending.Advance(entity.StatusUploaded))
	assert.Equal(t, entity.StatusProcessed, entity.StatusUploaded.Advance(entity.StatusProcessed))
	assert.Equal(t, entity.StatusProcessed, entity.StatusProcessed.Advance(entity.StatusUploaded))
	assert.Equal(t, entity.StatusUploaded, entity.StatusUploaded.Advance(entity.StatusPending))
	assert.False(t, entity.Status("DELETED").Valid())
}

func TestImage_MarkUploadedIsIdempotent(t *testing.T) {
	src := entity.ObjectInfo{Key: "images/abc/original", Width: 1000, Height: 500, Bytes: 4096}

	once := entity.NewImage("abc", time.Unix(1700000000, 0))
	once.MarkUploaded(src)

	twice := entity.NewImage("abc", time.Unix(1700000000, 0))
	twice.MarkUploaded(src)
	twice.MarkUploaded(src)

	assert.Equal(t, once, twice)
	assert.Equal(t, entity.StatusUploaded, twice.Status)
}

func TestImage_PutVariantIsIdempotent(t *testing.T) {
	v := entity.ObjectInfo{Key: "images/abc/thumb", Width: 150, Height: 75, Bytes: 900}

	img := entity.NewImage("abc", time.Now())
	img.MarkUploaded(entity.ObjectInfo{Key: "images/abc/original", Width: 1000, Height: 500})
	img.PutVariant("thumb", v)
	img.PutVariant("thumb", v)

	assert.Len(t, img.Variants, 1)
	assert.Equal(t, v, img.Variants["thumb"])
	assert.Equal(t, entity.StatusProcessed, img.Status)
}

func TestImage_RedeliveredIngestDoesNotRegress(t *testing.T) {
	src := entity.ObjectInfo{Key: "images/abc/original", Width: 1000, Height: 500}

	img := entity.NewImage("abc", time.Now())
	img.MarkUploaded(src)
	img.PutVariant("thumb", entity.ObjectInfo{Key: "images/abc/thumb", Width: 150, Height: 75})
	img.MarkUploaded(src)

	assert.Equal(t, entity.StatusProcessed, img.Status)
}

func TestImage_PendingSizes(t *testing.T) {
	img := entity.NewImage("abc", time.Now())
	img.PutVariant("medium", entity.ObjectInfo{})

	assert.Equal(t, []string{"thumb", "large"}, img.PendingSizes([]string{"thumb", "medium", "large"}))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "images/abc/original", entity.OriginalKey("abc"))
	assert.Equal(t, "images/abc/thumb", entity.VariantKey("abc", "thumb"))

	tests := []struct {
		key      string
		original bool
		id       string
	}{
		{"images/abc/original", true, "abc"},
		{"images/abc/original.jpg", true, "abc"},
		{"images/abc/thumb.jpg", false, "abc"},
		{"images/abc/thumb", false, "abc"},
		{"original", true, ""},
		{"images/original", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.original, entity.IsOriginalKey(tt.key))
			assert.Equal(t, tt.id, entity.ImageIDFromKey(tt.key))
		})
	}
}
