package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

const healthCheckTimeout = 5 * time.Second

// BinaryChecker reports whether an external tool can be executed.
type BinaryChecker interface {
	Available() error
}

// Pinger is a backing service that can be reached over the network.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	ytdlp    BinaryChecker
	services map[string]Pinger
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceHealth `json:"services"`
}

type ServiceHealth struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// NewHealthHandler creates a handler. Optional services (MongoDB, S3) are
// added with WithService only when they are configured.
func NewHealthHandler(ytdlp BinaryChecker) *HealthHandler {
	return &HealthHandler{
		ytdlp:    ytdlp,
		services: make(map[string]Pinger),
	}
}

func (h *HealthHandler) WithService(name string, p Pinger) *HealthHandler {
	h.services[name] = p
	return h
}

// Health godoc
// @Summary Health check endpoint
// @Description Check the yt-dlp binary and every configured backing service
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Success 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
		Services:  make(map[string]ServiceHealth),
	}

	response.Services["yt-dlp"] = h.checkBinary(ctx)
	for name, p := range h.services {
		response.Services[name] = h.checkService(ctx, name, p)
	}

	for _, service := range response.Services {
		if service.Status != "healthy" {
			response.Status = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Check if the service is ready to accept requests
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	// yt-dlp is the only hard requirement; the cache and archive degrade.
	ready := true
	checks := make(map[string]interface{})

	if err := h.ytdlp.Available(); err != nil {
		ready = false
		checks["yt-dlp"] = map[string]interface{}{
			"ready": false,
			"error": err.Error(),
		}
	} else {
		checks["yt-dlp"] = map[string]interface{}{
			"ready": true,
		}
	}

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	if ready {
		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) checkBinary(ctx context.Context) ServiceHealth {
	if err := h.ytdlp.Available(); err != nil {
		utils.LogError(ctx, "yt-dlp health check failed", err)
		return ServiceHealth{
			Status: "unhealthy",
			Error:  err.Error(),
		}
	}
	return ServiceHealth{Status: "healthy"}
}

func (h *HealthHandler) checkService(ctx context.Context, name string, p Pinger) ServiceHealth {
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	err := p.Ping(checkCtx)
	responseTime := time.Since(start).String()

	if err != nil {
		utils.LogError(ctx, "Health check failed", err, utils.Fields{"service": name})
		return ServiceHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ServiceHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
