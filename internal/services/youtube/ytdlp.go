package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/exec"
	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// YtdlpClient probes formats by running yt-dlp in metadata-only mode.
type YtdlpClient struct {
	runner  exec.Runner
	cfg     config.YtDlpConfig
	timeout time.Duration
}

func NewYtdlpClient(runner exec.Runner, cfg config.YtDlpConfig, timeout time.Duration) *YtdlpClient {
	return &YtdlpClient{runner: runner, cfg: cfg, timeout: timeout}
}

func (c *YtdlpClient) Probe(ctx context.Context, videoID string) (*formats.RawInfo, error) {
	probeCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(CommonArgs(c.cfg, videoID), "--dump-single-json", "--skip-download")
	start := time.Now()
	result, err := c.runner.RunWith(probeCtx,
		[]exec.Option{
			exec.WithCapture(),
			exec.WithCallbacks(nil, utils.StderrLogger(ctx, "yt-dlp")),
		},
		args...,
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if result != nil && RequiresLogin(string(result.Stderr)) {
			return nil, fmt.Errorf("probing %s: %w", videoID, ErrAuthRequired)
		}
		utils.LogWarn(ctx, "yt-dlp probe failed", utils.Fields{
			"video_id": videoID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("probing %s: %w: %v", videoID, ErrProbeUnavailable, err)
	}

	info, err := formats.ParseInfo(result.Stdout)
	if err != nil {
		return nil, fmt.Errorf("parsing probe output for %s: %w: %v", videoID, ErrProbeUnavailable, err)
	}

	utils.LogDebug(ctx, "yt-dlp probe completed", utils.Fields{
		"video_id":    videoID,
		"formats":     len(info.Formats),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return info, nil
}
