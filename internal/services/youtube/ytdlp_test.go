package youtube

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/exec"
)

type fakeRunner struct {
	result *exec.RunResult
	err    error
	args   []string
}

func (f *fakeRunner) RunWith(_ context.Context, _ []exec.Option, args ...string) (*exec.RunResult, error) {
	f.args = args
	return f.result, f.err
}

const probeDump = `{
	"id": "dQw4w9WgXcQ",
	"title": "Test video",
	"uploader": "Test channel",
	"duration": 212.4,
	"formats": [
		{"format_id": "140", "url": "https://a/140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2", "abr": 129.5},
		{"format_id": "137", "url": "https://v/137", "ext": "mp4", "vcodec": "avc1", "acodec": "none", "height": 1080}
	]
}`

func TestYtdlpClient_Probe(t *testing.T) {
	runner := &fakeRunner{result: &exec.RunResult{Stdout: []byte(probeDump)}}
	client := NewYtdlpClient(runner, config.YtDlpConfig{}, time.Minute)

	info, err := client.Probe(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "Test video", info.Title.String())
	require.Len(t, info.Formats, 2)
	assert.Equal(t, "140", info.Formats[0].ProviderID())
	assert.Contains(t, runner.args, "--dump-single-json")
	assert.Contains(t, runner.args, "--skip-download")
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", runner.args[0])
}

func TestYtdlpClient_ProbeAuthRequired(t *testing.T) {
	runner := &fakeRunner{
		result: &exec.RunResult{
			Stderr:   []byte("ERROR: [youtube] dQw4w9WgXcQ: Sign in to confirm you're not a bot"),
			ExitCode: 1,
		},
		err: errors.New("yt-dlp exited with code 1"),
	}
	client := NewYtdlpClient(runner, config.YtDlpConfig{}, time.Minute)

	_, err := client.Probe(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestYtdlpClient_ProbeFailure(t *testing.T) {
	runner := &fakeRunner{
		result: &exec.RunResult{Stderr: []byte("ERROR: Video unavailable"), ExitCode: 1},
		err:    errors.New("yt-dlp exited with code 1"),
	}
	client := NewYtdlpClient(runner, config.YtDlpConfig{}, time.Minute)

	_, err := client.Probe(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrProbeUnavailable)
	assert.NotErrorIs(t, err, ErrAuthRequired)
}

func TestYtdlpClient_ProbeMalformedOutput(t *testing.T) {
	runner := &fakeRunner{result: &exec.RunResult{Stdout: []byte("not json")}}
	client := NewYtdlpClient(runner, config.YtDlpConfig{}, 0)

	_, err := client.Probe(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrProbeUnavailable)
}

func TestYtdlpClient_ProbeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{result: &exec.RunResult{ExitCode: -1}, err: context.Canceled}
	client := NewYtdlpClient(runner, config.YtDlpConfig{}, time.Minute)

	_, err := client.Probe(ctx, "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrProbeUnavailable)
}
