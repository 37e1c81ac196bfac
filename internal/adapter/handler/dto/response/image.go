package response

import (
	"time"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/image"
)

type ObjectResponse struct {
	Key      string `json:"key"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	ByteSize int64  `json:"byteSize"`
}

type ImageResponse struct {
	ImageID      string                    `json:"imageId"`
	Status       string                    `json:"status"`
	CreatedAt    time.Time                 `json:"createdAt"`
	Source       *ObjectResponse           `json:"source,omitempty"`
	Variants     map[string]ObjectResponse `json:"variants"`
	PendingSizes []string                  `json:"pendingSizes"`
}

func objectFromEntity(o entity.ObjectInfo) ObjectResponse {
	return ObjectResponse{
		Key:      o.Key,
		Width:    o.Width,
		Height:   o.Height,
		ByteSize: o.Bytes,
	}
}

func ImageFromView(v *image.View) ImageResponse {
	img := v.Image

	resp := ImageResponse{
		ImageID:      img.ID,
		Status:       string(img.Status),
		CreatedAt:    img.CreatedAt,
		Variants:     make(map[string]ObjectResponse, len(img.Variants)),
		PendingSizes: v.PendingSizes,
	}

	if img.Source != nil {
		src := objectFromEntity(*img.Source)
		resp.Source = &src
	}
	for size, obj := range img.Variants {
		resp.Variants[size] = objectFromEntity(obj)
	}
	if resp.PendingSizes == nil {
		resp.PendingSizes = []string{}
	}

	return resp
}
