package youtube

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	ytapi "github.com/kkdai/youtube/v2"
	"github.com/sirupsen/logrus"

	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// InnertubeClient probes formats through YouTube's player API without a
// yt-dlp binary. Itags double as yt-dlp format ids.
type InnertubeClient struct {
	client  *ytapi.Client
	timeout time.Duration
}

func NewInnertubeClient(timeout time.Duration) *InnertubeClient {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.HTTPClient.Timeout = 30 * time.Second
	retryClient.Logger = retryLogger{entry: utils.GetLogger().WithField("component", "innertube")}

	return &InnertubeClient{
		client:  &ytapi.Client{HTTPClient: retryClient.StandardClient()},
		timeout: timeout,
	}
}

func (c *InnertubeClient) Probe(ctx context.Context, videoID string) (*formats.RawInfo, error) {
	probeCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	video, err := c.client.GetVideoContext(probeCtx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if RequiresLogin(err.Error()) {
			return nil, fmt.Errorf("probing %s: %w", videoID, ErrAuthRequired)
		}
		return nil, fmt.Errorf("probing %s: %w: %v", videoID, ErrProbeUnavailable, err)
	}

	info := &formats.RawInfo{
		ID:       formats.Text(video.ID),
		Title:    formats.Text(video.Title),
		Uploader: formats.Text(video.Author),
	}
	if video.Duration > 0 {
		info.Duration = formats.Number{Value: video.Duration.Seconds(), Valid: true}
	}
	for _, t := range video.Thumbnails {
		info.Thumbnails = append(info.Thumbnails, formats.RawThumbnail{
			URL:    formats.Text(t.URL),
			Width:  number(float64(t.Width)),
			Height: number(float64(t.Height)),
		})
	}

	for i := range video.Formats {
		f := &video.Formats[i]
		streamURL := f.URL
		if streamURL == "" {
			streamURL, err = c.client.GetStreamURLContext(probeCtx, video, f)
			if err != nil {
				utils.LogDebug(ctx, "Skipping format without a stream URL", utils.Fields{
					"video_id": videoID,
					"itag":     f.ItagNo,
					"error":    err.Error(),
				})
				continue
			}
		}
		info.Formats = append(info.Formats, rawFormat(f, streamURL))
	}
	return info, nil
}

func rawFormat(f *ytapi.Format, streamURL string) formats.RawFormat {
	raw := formats.RawFormat{
		Itag:           formats.Ident(strconv.Itoa(f.ItagNo)),
		URL:            formats.Text(streamURL),
		MimeType:       formats.Text(f.MimeType),
		Width:          number(float64(f.Width)),
		Height:         number(float64(f.Height)),
		FPS:            number(float64(f.FPS)),
		QualityLabel:   formats.Text(f.QualityLabel),
		Quality:        formats.Text(f.Quality),
		Bitrate:        number(float64(f.Bitrate)),
		AverageBitrate: number(float64(f.AverageBitrate)),
		AudioChannels:  number(float64(f.AudioChannels)),
		AudioQuality:   formats.Text(f.AudioQuality),
		ContentLength:  number(float64(f.ContentLength)),
	}
	if rate, err := strconv.ParseFloat(f.AudioSampleRate, 64); err == nil {
		raw.ASR = number(rate)
	}
	if t := f.AudioTrack; t != nil && t.ID != "" {
		// Track ids look like "en.4" or "de-DE.3".
		lang, _, _ := strings.Cut(t.ID, ".")
		raw.AudioTrackCamel = &formats.TrackDescriptor{
			ID:          t.ID,
			DisplayName: t.DisplayName,
			Language:    lang,
			Default:     t.AudioIsDefault,
		}
	}
	return raw
}

func number(v float64) formats.Number {
	if v <= 0 {
		return formats.Number{}
	}
	return formats.Number{Value: v, Valid: true}
}

// retryLogger routes retryablehttp's leveled logs through logrus.
type retryLogger struct {
	entry *logrus.Entry
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(pairs(keysAndValues)).Error(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(pairs(keysAndValues)).Warn(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(pairs(keysAndValues)).Debug(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(pairs(keysAndValues)).Debug(msg)
}

func pairs(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
