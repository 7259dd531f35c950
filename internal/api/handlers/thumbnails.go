package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/Ghazanfar1991/youtube-app/internal/models"
	"github.com/Ghazanfar1991/youtube-app/internal/services/youtube"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

type ThumbnailHandler struct{}

func NewThumbnailHandler() *ThumbnailHandler {
	return &ThumbnailHandler{}
}

// GetThumbnails godoc
// @Summary Thumbnail URLs of a video
// @Description Return the standard YouTube thumbnail set for a pasted URL or video ID, largest first
// @Tags thumbnails
// @Produce json
// @Param url query string true "YouTube URL or video ID"
// @Success 200 {object} models.ThumbnailListResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/thumbnails [get]
func (h *ThumbnailHandler) GetThumbnails(c *gin.Context) {
	reference := c.Query("url")
	if strings.TrimSpace(reference) == "" {
		errorResponse(c, utils.NewMissingParameterError("url"))
		return
	}

	videoID, err := youtube.ExtractVideoID(reference)
	if err != nil {
		errorResponse(c, utils.NewInvalidVideoReferenceError(reference))
		return
	}

	c.JSON(http.StatusOK, models.ThumbnailListResponse{
		VideoID: videoID,
		Thumbnails: lo.Map(youtube.Thumbnails(videoID), func(t youtube.Thumbnail, _ int) models.ThumbnailView {
			return models.ThumbnailView{Name: t.Name, URL: t.URL}
		}),
	})
}
