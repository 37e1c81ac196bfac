package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/storage"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/valueobject"
)

const (
	JPEGQuality     = 90
	JPEGContentType = "image/jpeg"
)

type ImageProcessorImpl struct {
	quality int
}

func NewImageProcessor() *ImageProcessorImpl {
	return &ImageProcessorImpl{quality: JPEGQuality}
}

// Dimensions reads only the image header.
func (p *ImageProcessorImpl) Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Resize renders the named size as a JPEG. The source is normalised to
// NRGBA first so paletted and grayscale inputs encode the same way. EXIF
// orientation is not applied: geometry must match what Dimensions reports.
func (p *ImageProcessorImpl) Resize(data []byte, size string) (*storage.Rendition, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	normalised := imaging.Clone(src)
	bounds := normalised.Bounds()
	width, height := valueobject.TargetDims(size, bounds.Dx(), bounds.Dy())

	resized := imaging.Resize(normalised, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}

	return &storage.Rendition{
		Data:        buf.Bytes(),
		Width:       width,
		Height:      height,
		ContentType: JPEGContentType,
	}, nil
}
