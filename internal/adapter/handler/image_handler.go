package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/apperror"
	"github.com/marcos-nsantos/image-pipeline/internal/pkg/httputil"
)

const (
	HeaderImageID      = "X-Image-Id"
	HeaderImageSize    = "X-Image-Size"
	HeaderViews        = "X-Views"
	HeaderPixelsViewed = "X-Pixels-Viewed"
)

type ImageHandler struct {
	imageSvc    ImageService
	deliverySvc DeliveryService
}

func NewImageHandler(imageSvc ImageService, deliverySvc DeliveryService) *ImageHandler {
	return &ImageHandler{imageSvc: imageSvc, deliverySvc: deliverySvc}
}

// Get godoc
//
//	@Summary		Get image status
//	@Description	Returns the image record and the default sizes still missing a variant
//	@Tags			images
//	@Produce		json
//	@Param			id	path		string	true	"Image ID"
//	@Success		200	{object}	response.ImageResponse
//	@Failure		400	{object}	httputil.ErrorResponse
//	@Failure		404	{object}	httputil.ErrorResponse
//	@Router			/images/{id} [get]
func (h *ImageHandler) Get(c *gin.Context) {
	view, err := h.imageSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleError(c, toAppError(err))
		return
	}

	httputil.OK(c, response.ImageFromView(view))
}

// Deliver godoc
//
//	@Summary		Download a variant
//	@Description	Redirects to a short-lived download URL for one variant, or the original
//	@Tags			images
//	@Param			id		path	string	true	"Image ID"
//	@Param			size	path	string	true	"Variant size or original"
//	@Success		302
//	@Header			302	{string}	X-Image-Id		"Image ID"
//	@Header			302	{string}	X-Views			"Views of this variant, when counters are enabled"
//	@Failure		400	{object}	httputil.ErrorResponse
//	@Failure		404	{object}	httputil.ErrorResponse
//	@Router			/images/{id}/{size} [get]
func (h *ImageHandler) Deliver(c *gin.Context) {
	out, err := h.deliverySvc.Deliver(c.Request.Context(), c.Param("id"), c.Param("size"))
	if err != nil {
		httputil.HandleError(c, toAppError(err))
		return
	}

	c.Header(HeaderImageID, out.ImageID)
	c.Header(HeaderImageSize, out.Size)
	if out.Stats != nil {
		c.Header(HeaderViews, strconv.FormatInt(out.Stats.Views, 10))
		c.Header(HeaderPixelsViewed, strconv.FormatInt(out.Stats.PixelsViewed, 10))
	}
	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, out.URL)
}

func toAppError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, domain.ErrInvalidImageID):
		return apperror.BadRequest("INVALID_ID", "invalid image id")
	case errors.Is(err, domain.ErrInvalidSizeName):
		return apperror.BadRequest("INVALID_SIZE", "invalid size")
	case errors.Is(err, domain.ErrImageNotFound):
		return apperror.NotFound("image")
	case errors.Is(err, domain.ErrVariantNotFound):
		return apperror.NotFound("variant")
	default:
		return apperror.Internal(err)
	}
}
