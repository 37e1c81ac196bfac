package response

import (
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

type UploadResponse struct {
	ImageID string              `json:"imageId"`
	Bucket  string              `json:"bucket"`
	Upload  *entity.UploadGrant `json:"upload"`
	Sizes   []string            `json:"sizes"`
}

func UploadResultToResponse(result *intake.UploadResult) UploadResponse {
	return UploadResponse{
		ImageID: result.ImageID,
		Bucket:  result.Bucket,
		Upload:  result.Upload,
		Sizes:   result.Sizes,
	}
}
