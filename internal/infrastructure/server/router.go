package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/handler"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/middleware"
)

type Router struct {
	engine         *gin.Engine
	uploadHandler  *handler.UploadHandler
	imageHandler   *handler.ImageHandler
	rateLimiter    *middleware.RateLimiter
	allowedOrigins []string
	logger         *zap.Logger
}

type RouterConfig struct {
	UploadHandler  *handler.UploadHandler
	ImageHandler   *handler.ImageHandler
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	Logger         *zap.Logger
	Environment    string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:         engine,
		uploadHandler:  cfg.UploadHandler,
		imageHandler:   cfg.ImageHandler,
		rateLimiter:    cfg.RateLimiter,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.allowedOrigins))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	{
		uploads := api.Group("/uploads")
		if r.rateLimiter != nil {
			uploads.Use(r.rateLimiter.Limit())
		}
		{
			uploads.POST("", r.uploadHandler.Request)
		}

		images := api.Group("/images")
		{
			images.GET("/:id", r.imageHandler.Get)
			images.GET("/:id/:size", r.imageHandler.Deliver)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
