package formats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalog_ProgressivePlusMergedPairing(t *testing.T) {
	info, err := ParseInfo([]byte(`{
		"id": "abcdefghijk",
		"title": "Road Trip Highlights",
		"uploader": "Channel",
		"duration": 125.4,
		"formats": [
			{"format_id": "22", "url": "https://m/22", "ext": "mp4", "vcodec": "avc1.64001F", "acodec": "mp4a.40.2", "height": 720, "fps": 30, "tbr": 1500, "filesize": 50000000, "language": "en"},
			{"format_id": "248", "url": "https://m/248", "ext": "webm", "vcodec": "vp9", "acodec": "none", "height": 1080, "fps": 30, "tbr": 2500, "filesize": 80000000, "language": "en"},
			{"format_id": "140", "url": "https://m/140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2", "abr": 128, "filesize": 4000000, "language": "en"}
		]
	}`))
	require.NoError(t, err)

	c := BuildCatalog("abcdefghijk", info)

	assert.Equal(t, "Road Trip Highlights", c.Title)
	assert.Equal(t, "Channel", c.Channel)
	assert.Equal(t, 125, c.DurationSeconds)

	require.Len(t, c.VideoOptions, 2)
	require.Len(t, c.AudioOptions, 1)

	progressive := c.VideoOptions[0]
	assert.Equal(t, KindProgressive, progressive.Kind)
	assert.Equal(t, "22", progressive.Selector)
	assert.Equal(t, "720p", progressive.Label)
	assert.False(t, progressive.RequiresMerge)
	assert.Nil(t, progressive.Audio)

	merged := c.VideoOptions[1]
	assert.True(t, merged.RequiresMerge)
	assert.Equal(t, "248+140", merged.Selector)
	assert.Equal(t, "mp4", merged.OutputContainer)
	assert.Equal(t, "248-1-merged-140-2", merged.ID)
	assert.Equal(t, int64(84000000), merged.CombinedSizeBytes)
	assert.Equal(t, "80 MB", merged.SizeDisplay)
	assert.Equal(t, 1080, merged.Primary().Height)

	audio := c.AudioOptions[0]
	assert.Equal(t, "140", audio.Selector)
	assert.Equal(t, "m4a", audio.OutputContainer)
	assert.Nil(t, audio.Video)
}

func TestBuildCatalog_OnlyDubbedAudio(t *testing.T) {
	info, err := ParseInfo([]byte(`{
		"id": "abcdefghijk",
		"language": "en",
		"formats": [
			{"format_id": "248", "url": "https://m/248", "ext": "webm", "vcodec": "vp9", "acodec": "none", "height": 1080},
			{"format_id": "251-1", "url": "https://m/251", "ext": "webm", "vcodec": "none", "acodec": "opus", "abr": 130, "language": "es",
			 "audio_track": {"id": "es.3", "displayName": "Spanish (dubbed)"}}
		]
	}`))
	require.NoError(t, err)

	c := BuildCatalog("abcdefghijk", info)

	require.Len(t, c.VideoOptions, 1)
	pair := c.VideoOptions[0]
	require.NotNil(t, pair.Audio)
	require.NotNil(t, pair.Audio.AudioTrack)
	assert.True(t, pair.Audio.AudioTrack.IsDub)
	assert.Equal(t, "1080p • Spanish (dubbed)", pair.Label)
	assert.Equal(t, "webm", pair.OutputContainer)
	assert.Equal(t, "248+251-1", pair.Selector)
}

func TestBuildCatalog_VideoWithoutAudioIsOmitted(t *testing.T) {
	info, err := ParseInfo([]byte(`{
		"id": "abcdefghijk",
		"formats": [
			{"format_id": "137", "url": "https://m/137", "vcodec": "avc1", "acodec": "none", "height": 1080}
		]
	}`))
	require.NoError(t, err)

	c := BuildCatalog("abcdefghijk", info)
	assert.Empty(t, c.VideoOptions)
	assert.Empty(t, c.AudioOptions)
	assert.Len(t, c.Buckets.VideoOnly, 1)
}

func TestPair_SizeEstimation(t *testing.T) {
	video := StreamFormat{ID: "137-0", FormatID: "137", Container: "mp4", HasVideo: true, Label: "1080p"}
	audio := StreamFormat{ID: "140-1", FormatID: "140", Container: "m4a", HasAudio: true}

	testCases := []struct {
		name        string
		videoSize   int64
		audioSize   int64
		wantBytes   int64
		wantDisplay string
	}{
		{"both known", 1024 * 1024, 1024 * 1024, 2 * 1024 * 1024, "2.0 MB"},
		{"video unknown", 0, 1024, 0, SizeVaries},
		{"audio unknown", 1024, 0, 0, SizeVaries},
		{"both unknown", 0, 0, 0, SizeVaries},
		{"sum saturates", math.MaxInt64 - 10, 100, math.MaxInt64, FormatBytes(math.MaxInt64)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, a := video, audio
			v.SizeBytes, a.SizeBytes = tc.videoSize, tc.audioSize
			o := Pair(v, a)
			assert.Equal(t, tc.wantBytes, o.CombinedSizeBytes)
			assert.Equal(t, tc.wantDisplay, o.SizeDisplay)
			assert.NotEqual(t, "0 B", o.SizeDisplay)
		})
	}
}

func TestPair_OutputContainer(t *testing.T) {
	testCases := []struct {
		video, audio string
		want         string
	}{
		{"webm", "webm", "webm"},
		{"webm", "m4a", "mp4"},
		{"mp4", "webm", "mp4"},
		{"mp4", "m4a", "mp4"},
	}

	for _, tc := range testCases {
		o := Pair(
			StreamFormat{FormatID: "v", Container: tc.video, HasVideo: true},
			StreamFormat{FormatID: "a", Container: tc.audio, HasAudio: true},
		)
		assert.Equal(t, tc.want, o.OutputContainer, "%s+%s", tc.video, tc.audio)
	}
}
