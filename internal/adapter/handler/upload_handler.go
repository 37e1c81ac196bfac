package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/apperror"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/httputil"
	"github.com/marcos-nsantos/image-pipeline/internal/usecase/intake"
)

const maxRequestBody = 64 << 10 // 64KB

type UploadHandler struct {
	intakeSvc IntakeService
}

func NewUploadHandler(intakeSvc IntakeService) *UploadHandler {
	return &UploadHandler{intakeSvc: intakeSvc}
}

// Request godoc
//
//	@Summary		Request an upload grant
//	@Description	Creates a PENDING image record and returns a presigned POST for the original
//	@Tags			uploads
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.UploadRequest	false	"Optional size override"
//	@Success		200		{object}	response.UploadResponse
//	@Failure		500		{object}	httputil.ErrorResponse
//	@Router			/uploads [post]
func (h *UploadHandler) Request(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody))
	}

	result, err := h.intakeSvc.RequestUpload(c.Request.Context(), intake.RequestInput{
		Sizes: request.ParseUploadRequest(body),
	})
	if err != nil {
		httputil.HandleError(c, apperror.Internal(err))
		return
	}

	httputil.OK(c, response.UploadResultToResponse(result))
}
