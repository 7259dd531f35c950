package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ghazanfar1991/youtube-app/internal/models"
	"github.com/Ghazanfar1991/youtube-app/internal/services/youtube"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// Lister produces the format listing of one video.
type Lister interface {
	List(ctx context.Context, videoID string) (*models.FormatListResponse, error)
}

type StreamsHandler struct {
	catalog Lister
}

func NewStreamsHandler(catalog Lister) *StreamsHandler {
	return &StreamsHandler{catalog: catalog}
}

// GetStreams godoc
// @Summary List downloadable streams of a video
// @Description Probe a YouTube video and return its paired video options and audio-only options
// @Tags streams
// @Produce json
// @Param id path string true "YouTube video ID"
// @Success 200 {object} models.FormatListResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/streams/{id} [get]
func (h *StreamsHandler) GetStreams(c *gin.Context) {
	h.list(c, c.Param("id"))
}

// GetStreamsByURL godoc
// @Summary List downloadable streams of a pasted URL
// @Description Accepts any YouTube watch, short, embed or youtu.be URL, or a bare video ID
// @Tags streams
// @Produce json
// @Param url query string true "YouTube URL or video ID"
// @Success 200 {object} models.FormatListResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/streams [get]
func (h *StreamsHandler) GetStreamsByURL(c *gin.Context) {
	h.list(c, c.Query("url"))
}

func (h *StreamsHandler) list(c *gin.Context, reference string) {
	ctx := c.Request.Context()

	if strings.TrimSpace(reference) == "" {
		errorResponse(c, utils.NewMissingParameterError("url"))
		return
	}

	videoID, err := youtube.ExtractVideoID(reference)
	if err != nil {
		errorResponse(c, utils.NewInvalidVideoReferenceError(reference))
		return
	}

	listing, err := h.catalog.List(ctx, videoID)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			utils.LogInfo(ctx, "Client went away during format listing", utils.Fields{"video_id": videoID})
			c.Abort()
		case errors.Is(err, youtube.ErrAuthRequired):
			utils.LogWarn(ctx, "Format listing requires authentication", utils.Fields{"video_id": videoID})
			errorResponse(c, utils.NewAuthRequiredError())
		default:
			utils.LogError(ctx, "Failed to list formats", err, utils.Fields{"video_id": videoID})
			errorResponse(c, utils.NewProbeError())
		}
		return
	}

	c.JSON(http.StatusOK, listing)
}
