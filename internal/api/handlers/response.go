package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

func errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, gin.H{
		"error":      err,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
