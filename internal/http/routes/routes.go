package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/copyright-stamp/internal/http/handlers"
	"github.com/phambaophuc/copyright-stamp/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	stampHandler *handlers.StampHandler
	logger       *zap.Logger
}

func NewRouter(
	stampHandler *handlers.StampHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		stampHandler: stampHandler,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.stampHandler.HealthCheck)
		v1.GET("/stats", r.stampHandler.GetStats)
		v1.GET("/watermark", r.stampHandler.GetWatermark)

		images := v1.Group("/images")
		{
			images.POST("/stamp", middleware.ValidateContentType(), r.stampHandler.StampImage)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", r.stampHandler.SubmitJob)
			jobs.GET("/:id", r.stampHandler.GetJob)
		}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Copyright stamping is running",
		})
	})

	return router
}
