package lambda_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/lambda"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/mocks"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

func TestUploadHandler_Handle(t *testing.T) {
	result := &intake.UploadResult{
		ImageID: "01jbz3v6m8q4k2r7t9w5x1y3z5",
		Bucket:  "uploads",
		Upload: &entity.UploadGrant{
			URL:       "https://uploads.s3.amazonaws.com/",
			Method:    "POST",
			Fields:    map[string]string{"key": "images/01jbz3v6m8q4k2r7t9w5x1y3z5/original"},
			ExpiresAt: time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC),
		},
		Sizes: []string{"thumb"},
	}

	t.Run("returns grant for plain body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		intakeSvc := mocks.NewMockIntakeService(ctrl)
		h := lambda.NewUploadHandler(intakeSvc, zap.NewNop())

		intakeSvc.EXPECT().
			RequestUpload(gomock.Any(), intake.RequestInput{Sizes: []string{"thumb"}}).
			Return(result, nil)

		resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"sizes":["thumb"]}`})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Headers["Content-Type"])

		var body map[string]any
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
		assert.Equal(t, "01jbz3v6m8q4k2r7t9w5x1y3z5", body["imageId"])
		upload := body["upload"].(map[string]any)
		assert.Equal(t, "POST", upload["method"])
	})

	t.Run("decodes base64 body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		intakeSvc := mocks.NewMockIntakeService(ctrl)
		h := lambda.NewUploadHandler(intakeSvc, zap.NewNop())

		intakeSvc.EXPECT().
			RequestUpload(gomock.Any(), intake.RequestInput{Sizes: []string{"large"}}).
			Return(result, nil)

		resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
			Body:            base64.StdEncoding.EncodeToString([]byte(`{"sizes":["large"]}`)),
			IsBase64Encoded: true,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("intake failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		intakeSvc := mocks.NewMockIntakeService(ctrl)
		h := lambda.NewUploadHandler(intakeSvc, zap.NewNop())

		intakeSvc.EXPECT().RequestUpload(gomock.Any(), gomock.Any()).Return(nil, errors.New("presign failed"))

		resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, resp.Body, "INTERNAL_ERROR")
	})
}
