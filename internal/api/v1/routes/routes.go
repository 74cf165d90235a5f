package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yourtranscript/internal/api/middleware"
	"yourtranscript/internal/api/v1/handlers"
	"yourtranscript/internal/api/v1/services"
	"yourtranscript/internal/app/auth"
	"yourtranscript/internal/app/queue"
)

// ServiceContainer holds everything the route handlers need.
type ServiceContainer struct {
	ExtractionService services.ExtractionService
	Verifier          auth.Verifier
	Receiver          *queue.Receiver
	Logger            *zap.Logger
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	extractHandler := handlers.NewExtractHandler(container.ExtractionService)
	callbackHandler := handlers.NewCallbackHandler(container.Receiver, container.ExtractionService, container.Logger)
	transcriptsHandler := handlers.NewTranscriptsHandler(container.ExtractionService)

	// The callback authenticates via body signature, not a user token,
	// so it stays outside the auth group.
	router.POST("/extract/callback", callbackHandler.Callback)

	authed := router.Group("", middleware.Auth(container.Verifier, container.Logger))
	{
		authed.POST("/extract", extractHandler.Extract)
		authed.GET("/extract/status", extractHandler.Status)
		authed.GET("/transcripts/recent", transcriptsHandler.Recent)
		authed.GET("/transcripts/:video_id", transcriptsHandler.Get)
	}
}
