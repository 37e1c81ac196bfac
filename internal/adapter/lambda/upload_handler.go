// Package lambda serves upload requests behind an API Gateway proxy
// integration.
package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/httputil"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

type UploadHandler struct {
	intakeSvc handler.IntakeService
	logger    *zap.Logger
}

func NewUploadHandler(intakeSvc handler.IntakeService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{intakeSvc: intakeSvc, logger: logger}
}

func (h *UploadHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			body = nil
		} else {
			body = decoded
		}
	}

	result, err := h.intakeSvc.RequestUpload(ctx, intake.RequestInput{
		Sizes: request.ParseUploadRequest(body),
	})
	if err != nil {
		h.logger.Error("requesting upload",
			zap.String("request_id", req.RequestContext.RequestID),
			zap.Error(err),
		)
		return jsonResponse(http.StatusInternalServerError, httputil.ErrorResponse{
			Error:     "internal server error",
			Code:      "INTERNAL_ERROR",
			RequestID: req.RequestContext.RequestID,
		})
	}

	return jsonResponse(http.StatusOK, response.UploadResultToResponse(result))
}

func jsonResponse(status int, v any) (events.APIGatewayProxyResponse, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(payload),
	}, nil
}
