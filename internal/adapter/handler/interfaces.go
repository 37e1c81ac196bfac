package handler

import (
	"context"

	"github.com/marcos-nsantos/image-pipeline/internal/usecase/delivery"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/image"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type IntakeService interface {
	RequestUpload(ctx context.Context, input intake.RequestInput) (*intake.UploadResult, error)
}

type ImageService interface {
	Get(ctx context.Context, id string) (*image.View, error)
}

type DeliveryService interface {
	Deliver(ctx context.Context, id, size string) (*delivery.Redirect, error)
}
