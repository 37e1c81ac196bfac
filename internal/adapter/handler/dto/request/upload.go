package request

import (
	"encoding/json"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/valueobject"
)

// UploadRequest is lenient: a body that does not parse, or a sizes value
// that is not a list, means no override.
type UploadRequest struct {
	Sizes []any `json:"sizes"`
}

// ParseUploadRequest keeps only the string entries of sizes. The length
// limit applies to the raw list, so an over-length list means no override
// even when some of its entries are dropped.
func ParseUploadRequest(body []byte) []string {
	var req UploadRequest
	if len(body) == 0 || json.Unmarshal(body, &req) != nil {
		return nil
	}
	if len(req.Sizes) > valueobject.MaxSizeOverrides {
		return nil
	}

	sizes := make([]string, 0, len(req.Sizes))
	for _, v := range req.Sizes {
		if s, ok := v.(string); ok {
			sizes = append(sizes, s)
		}
	}
	return sizes
}
