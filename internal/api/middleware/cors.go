package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// CORSMiddleware builds the CORS handler for the configured profile. It
// returns nil when CORS is disabled or no origin is allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}
	if len(cfg.AllowedOrigins) == 0 {
		utils.GetLogger().WithField("profile", cfg.Profile).Warn("CORS enabled without allowed origins, skipping")
		return nil
	}

	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if slices.Contains(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
		// Browsers reject credentials with a wildcard origin.
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(corsConfig)
}
