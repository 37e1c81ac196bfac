package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/mocks"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func uploadResult() *intake.UploadResult {
	return &intake.UploadResult{
		ImageID: "01jbz3v6m8q4k2r7t9w5x1y3z5",
		Bucket:  "uploads",
		Upload: &entity.UploadGrant{
			URL:       "https://uploads.s3.amazonaws.com/",
			Method:    "POST",
			Fields:    map[string]string{"key": "images/01jbz3v6m8q4k2r7t9w5x1y3z5/original"},
			ExpiresAt: time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC),
		},
		Sizes: []string{"thumb", "medium", "large"},
	}
}

func TestUploadHandler_Request(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSizes []string
	}{
		{name: "size override", body: `{"sizes":["thumb"," poster "]}`, wantSizes: []string{"thumb", " poster "}},
		{name: "empty body", body: ``, wantSizes: nil},
		{name: "malformed body", body: `{"sizes":`, wantSizes: nil},
		{name: "sizes not a list", body: `{"sizes":"thumb"}`, wantSizes: nil},
		{name: "non-string entries dropped", body: `{"sizes":["thumb",3,null,"large"]}`, wantSizes: []string{"thumb", "large"}},
		{name: "eleven entries fall back to defaults", body: `{"sizes":["a","b","c","d","e","f","g","h","i","j",null]}`, wantSizes: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			intakeSvc := mocks.NewMockIntakeService(ctrl)
			h := handler.NewUploadHandler(intakeSvc)

			router := setupRouter()
			router.POST("/uploads", h.Request)

			intakeSvc.EXPECT().
				RequestUpload(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, input intake.RequestInput) (*intake.UploadResult, error) {
					if tt.wantSizes == nil {
						assert.Empty(t, input.Sizes)
					} else {
						assert.Equal(t, tt.wantSizes, input.Sizes)
					}
					return uploadResult(), nil
				})

			req := httptest.NewRequest(http.MethodPost, "/uploads", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "01jbz3v6m8q4k2r7t9w5x1y3z5", resp["imageId"])
			assert.Equal(t, "uploads", resp["bucket"])
			assert.NotNil(t, resp["upload"])
			assert.Len(t, resp["sizes"], 3)
		})
	}

	t.Run("returns 500 when intake fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		intakeSvc := mocks.NewMockIntakeService(ctrl)
		h := handler.NewUploadHandler(intakeSvc)

		router := setupRouter()
		router.POST("/uploads", h.Request)

		intakeSvc.EXPECT().RequestUpload(gomock.Any(), gomock.Any()).Return(nil, errors.New("table unavailable"))

		req := httptest.NewRequest(http.MethodPost, "/uploads", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
