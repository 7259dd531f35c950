package downloader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/exec"
	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/services/youtube"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

var (
	// ErrTranscodeFailed means every strategy of the ladder failed.
	ErrTranscodeFailed = errors.New("all download strategies failed")
	// ErrCancelled means the caller went away before the download finished.
	ErrCancelled = errors.New("download cancelled")
)

// Attempt records one run of yt-dlp.
type Attempt struct {
	Strategy State
	ExitCode int
	Duration time.Duration
	Err      error

	outcome outcome
}

// Outcome describes how the attempt ended.
func (a Attempt) Outcome() string {
	return a.outcome.String()
}

// LadderError carries every attempt of an exhausted ladder.
type LadderError struct {
	VideoID  string
	Attempts []Attempt
}

func (e *LadderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "download of %s failed after %d attempt(s)", e.VideoID, len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: exit %d", a.Strategy, a.ExitCode)
		if a.Err != nil {
			fmt.Fprintf(&b, " (%v)", a.Err)
		}
	}
	return b.String()
}

func (e *LadderError) Unwrap() error {
	return ErrTranscodeFailed
}

// Request describes one download.
type Request struct {
	VideoID   string
	Format    string
	Media     formats.MediaType
	Ext       string
	Title     string
	MaxHeight int
	MinHeight int
}

type Service struct {
	runner    exec.Runner
	prober    youtube.Prober
	ytdlp     config.YtDlpConfig
	config    config.DownloadConfig
	semaphore chan struct{}
}

func NewService(runner exec.Runner, prober youtube.Prober, ytdlp config.YtDlpConfig, cfg config.DownloadConfig) *Service {
	limit := cfg.MaxConcurrentDownloads
	if limit <= 0 {
		limit = 1
	}
	return &Service{
		runner:    runner,
		prober:    prober,
		ytdlp:     ytdlp,
		config:    cfg,
		semaphore: make(chan struct{}, limit),
	}
}

// Download runs the fallback ladder for req. On success the caller owns the
// returned Artifact and must Close it. Errors wrap youtube.ErrAuthRequired,
// ErrCancelled or ErrTranscodeFailed (as *LadderError).
func (s *Service) Download(ctx context.Context, req Request) (*Artifact, error) {
	if req.Media != formats.MediaAudio {
		req.Media = formats.MediaVideo
	}

	select {
	case s.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for a download slot: %v", ErrCancelled, ctx.Err())
	}
	defer func() { <-s.semaphore }()

	selection, err := s.selection(ctx, req)
	if err != nil {
		return nil, err
	}

	ext := OutputExtension(req.Media, req.Ext)
	title := utils.SafeTitle(req.Title)
	if strings.TrimSpace(req.Title) == "" {
		title = utils.SafeTitle(req.VideoID)
	}

	ws, err := newWorkspace(s.config.TempDir)
	if err != nil {
		return nil, err
	}

	var (
		attempts []Attempt
		output   string
	)
	state := initialState(req.Media)
	for !state.Terminal() {
		path, attempt := s.runAttempt(ctx, ws, len(attempts)+1, state, req.VideoID, selection, ext, title)
		attempts = append(attempts, attempt)
		output = path

		next := transition(state, attempt.outcome)
		if next == StateReEncode {
			utils.LogWarn(ctx, "Remux failed, retrying with re-encode", utils.Fields{
				"video_id":  req.VideoID,
				"exit_code": attempt.ExitCode,
			})
		}
		state = next
	}

	switch state {
	case StateSucceeded:
		artifact, err := newArtifact(output, ws, title)
		if err != nil {
			ws.remove()
			return nil, fmt.Errorf("failed to open download output: %w", err)
		}
		artifact.VideoID = req.VideoID
		artifact.Selection = selection
		artifact.Attempts = attempts
		utils.LogInfo(ctx, "Download completed", utils.Fields{
			"video_id": req.VideoID,
			"format":   selection.Format,
			"strategy": attempts[len(attempts)-1].Strategy,
			"size":     artifact.Size,
			"attempts": len(attempts),
		})
		return artifact, nil
	case StateAuthRequired:
		ws.remove()
		return nil, fmt.Errorf("downloading %s: %w", req.VideoID, youtube.ErrAuthRequired)
	case StateCancelled:
		ws.remove()
		return nil, fmt.Errorf("downloading %s: %w", req.VideoID, ErrCancelled)
	default:
		ws.remove()
		return nil, &LadderError{VideoID: req.VideoID, Attempts: attempts}
	}
}

// selection validates the requested selector against a fresh probe. Any
// doubt about it falls back to the generic selection.
func (s *Service) selection(ctx context.Context, req Request) (formats.Selection, error) {
	generic := formats.GenericSelection(req.Media, s.maxHeight(req), s.minHeight(req))
	if strings.TrimSpace(req.Format) == "" {
		return generic, nil
	}
	if _, err := formats.ParseSelector(req.Format); err != nil {
		utils.LogWarn(ctx, "Ignoring malformed format selector", utils.Fields{
			"video_id": req.VideoID,
			"format":   req.Format,
		})
		return generic, nil
	}

	info, err := s.prober.Probe(ctx, req.VideoID)
	switch {
	case ctx.Err() != nil:
		return formats.Selection{}, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	case errors.Is(err, youtube.ErrAuthRequired):
		return formats.Selection{}, err
	case err != nil:
		utils.LogWarn(ctx, "Probe failed, using generic selection", utils.Fields{
			"video_id": req.VideoID,
			"error":    err.Error(),
		})
		return generic, nil
	}

	tracks := formats.NewTrackIndex(info.AudioTracks)
	ids := formats.FormatIDs(formats.Dedupe(formats.NormalizeAll(info.Formats, tracks)))
	selection := formats.ResolveSelection(req.Format, ids, req.Media, s.maxHeight(req), s.minHeight(req))
	if selection.Generic {
		utils.LogWarn(ctx, "Stale format selector, using generic selection", utils.Fields{
			"video_id": req.VideoID,
			"format":   req.Format,
		})
	}
	return selection, nil
}

func (s *Service) maxHeight(req Request) int {
	if req.MaxHeight > 0 {
		return req.MaxHeight
	}
	return s.config.MaxHeight
}

func (s *Service) minHeight(req Request) int {
	if req.MinHeight > 0 {
		return req.MinHeight
	}
	return s.config.MinHeight
}

func (s *Service) runAttempt(ctx context.Context, ws *workspace, n int, state State, videoID string, sel formats.Selection, ext, title string) (path string, attempt Attempt) {
	attempt = Attempt{Strategy: state, ExitCode: -1, outcome: outcomeFailed}
	start := time.Now()
	defer func() { attempt.Duration = time.Since(start) }()

	dir, err := ws.attemptDir(n)
	if err != nil {
		attempt.Err = err
		return "", attempt
	}

	attemptCtx := ctx
	if s.config.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.config.AttemptTimeout)
		defer cancel()
	}

	utils.LogDebug(ctx, "Starting download attempt", utils.Fields{
		"video_id": videoID,
		"attempt":  n,
		"strategy": state,
		"format":   sel.Format,
		"sort":     sel.Sort,
	})

	result, err := s.runner.RunWith(attemptCtx,
		[]exec.Option{
			exec.WithCapture(),
			exec.WithCallbacks(nil, utils.StderrLogger(ctx, "yt-dlp")),
		},
		s.args(dir, state, videoID, sel, ext, title)...,
	)
	if result != nil {
		attempt.ExitCode = result.ExitCode
	}

	switch {
	case ctx.Err() != nil:
		attempt.Err = ctx.Err()
		attempt.outcome = outcomeCancelled
		return "", attempt
	case err != nil:
		// A timed-out attempt lands here like any other non-zero exit.
		attempt.Err = err
		if result != nil && youtube.RequiresLogin(string(result.Stderr)) {
			attempt.outcome = outcomeAuthRequired
		}
		return "", attempt
	}

	path, err = findOutput(dir, ext)
	if err != nil {
		attempt.Err = err
		return "", attempt
	}
	attempt.outcome = outcomeSucceeded
	return path, attempt
}

func (s *Service) args(dir string, state State, videoID string, sel formats.Selection, ext, title string) []string {
	args := youtube.CommonArgs(s.ytdlp, videoID)
	args = append(args, "--quiet", "--restrict-filenames")
	if s.config.ConcurrentFragments > 0 {
		args = append(args, "-N", strconv.Itoa(s.config.ConcurrentFragments))
	}
	args = append(args, "-f", sel.Format)
	if sel.Sort != "" {
		args = append(args, "-S", sel.Sort)
	}
	args = append(args, "-o", filepath.Join(dir, title+".%(ext)s"))
	args = append(args, strategyArgs(state, ext)...)
	if s.ytdlp.FFmpegPath != "" {
		args = append(args, "--ffmpeg-location", s.ytdlp.FFmpegPath)
	}
	return args
}
