package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Ghazanfar1991/youtube-app/internal/api/handlers"
	"github.com/Ghazanfar1991/youtube-app/internal/api/middleware"
	"github.com/Ghazanfar1991/youtube-app/internal/config"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, streamsHandler *handlers.StreamsHandler, downloadHandler *handlers.DownloadHandler, thumbnailHandler *handlers.ThumbnailHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	if corsHandler := middleware.CORSMiddleware(&cfg.CORS); corsHandler != nil {
		engine.Use(corsHandler)
	}

	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		api.GET("/streams", streamsHandler.GetStreamsByURL)    // /api/v1/streams?url=
		api.GET("/streams/:id", streamsHandler.GetStreams)     // /api/v1/streams/{id}
		api.GET("/download", downloadHandler.Download)         // /api/v1/download
		api.HEAD("/download", downloadHandler.Download)        // /api/v1/download (probe only)
		api.GET("/thumbnails", thumbnailHandler.GetThumbnails) // /api/v1/thumbnails?url=
	}

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Addr() string {
	return r.config.Server.Host + ":" + r.config.Server.Port
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
