package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ghazanfar1991/youtube-app/internal/models"
	"github.com/Ghazanfar1991/youtube-app/internal/services/downloader"
	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/services/youtube"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

const archiveTimeout = 10 * time.Minute

// Downloader runs the download ladder for one request.
type Downloader interface {
	Download(ctx context.Context, req downloader.Request) (*downloader.Artifact, error)
}

// Archiver stores a finished artifact. It is optional.
type Archiver interface {
	Archive(ctx context.Context, a *downloader.Artifact) (string, error)
}

type DownloadHandler struct {
	downloader Downloader
	archiver   Archiver
}

// NewDownloadHandler creates a handler. archiver may be nil.
func NewDownloadHandler(d Downloader, archiver Archiver) *DownloadHandler {
	return &DownloadHandler{
		downloader: d,
		archiver:   archiver,
	}
}

// Download godoc
// @Summary Download a video or its audio
// @Description Download a YouTube video through yt-dlp. Tries a remux first, then a re-encode. Supports range requests.
// @Tags download
// @Produce application/octet-stream
// @Param id query string true "YouTube URL or video ID"
// @Param format query string false "Format selector from the streams listing"
// @Param type query string false "video or audio" Enums(video, audio)
// @Param ext query string false "Output extension"
// @Param title query string false "File name without extension"
// @Param maxHeight query int false "Upper height bound for the generic selection"
// @Param minHeight query int false "Preferred lower height bound for the generic selection"
// @Param Range header string false "Range header for partial content (e.g., bytes=0-1023)"
// @Success 200 {file} binary "Full file download"
// @Success 206 {file} binary "Partial content (range request)"
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/download [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	var query models.DownloadQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid query parameters", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}
	if strings.TrimSpace(query.ID) == "" {
		errorResponse(c, utils.NewMissingParameterError("id"))
		return
	}

	videoID, err := youtube.ExtractVideoID(query.ID)
	if err != nil {
		errorResponse(c, utils.NewInvalidVideoReferenceError(query.ID))
		return
	}

	media := formats.MediaVideo
	if strings.EqualFold(strings.TrimSpace(query.Type), string(formats.MediaAudio)) {
		media = formats.MediaAudio
	}

	// HEAD answers without running yt-dlp.
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", utils.ContentTypeForExtension(downloader.OutputExtension(media, query.Ext)))
		c.Status(http.StatusOK)
		return
	}

	artifact, err := h.downloader.Download(ctx, downloader.Request{
		VideoID:   videoID,
		Format:    query.Format,
		Media:     media,
		Ext:       query.Ext,
		Title:     query.Title,
		MaxHeight: query.MaxHeight,
		MinHeight: query.MinHeight,
	})
	if err != nil {
		h.downloadError(c, videoID, err)
		return
	}
	defer artifact.Close()

	c.Header("Content-Type", artifact.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, artifact.FileName))
	http.ServeContent(c.Writer, c.Request, artifact.FileName, artifact.ModTime, artifact)
	c.Writer.Flush()

	if h.archiver != nil {
		h.archive(ctx, artifact)
	}
}

func (h *DownloadHandler) downloadError(c *gin.Context, videoID string, err error) {
	ctx := c.Request.Context()

	var ladderErr *downloader.LadderError
	switch {
	case errors.Is(err, downloader.ErrCancelled) || ctx.Err() != nil:
		utils.LogInfo(ctx, "Client cancelled download", utils.Fields{"video_id": videoID})
		c.Abort()
	case errors.Is(err, youtube.ErrAuthRequired):
		utils.LogWarn(ctx, "Download requires authentication", utils.Fields{"video_id": videoID})
		errorResponse(c, utils.NewAuthRequiredError())
	case errors.As(err, &ladderErr):
		utils.LogError(ctx, "All download strategies failed", err, utils.Fields{
			"video_id": videoID,
			"attempts": len(ladderErr.Attempts),
		})
		errorResponse(c, utils.NewDownloadError(len(ladderErr.Attempts)))
	default:
		utils.LogError(ctx, "Download failed", err, utils.Fields{"video_id": videoID})
		errorResponse(c, utils.NewDownloadError(0))
	}
}

func (h *DownloadHandler) archive(ctx context.Context, artifact *downloader.Artifact) {
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	key, err := h.archiver.Archive(archiveCtx, artifact)
	if err != nil {
		utils.LogError(ctx, "Failed to archive download", err, utils.Fields{"video_id": artifact.VideoID})
		return
	}
	utils.LogDebug(ctx, "Download archived", utils.Fields{
		"video_id": artifact.VideoID,
		"key":      key,
	})
}
