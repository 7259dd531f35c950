package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseFormat(t *testing.T, doc string) RawFormat {
	t.Helper()
	info, err := ParseInfo([]byte(`{"formats":[` + doc + `]}`))
	require.NoError(t, err)
	require.Len(t, info.Formats, 1)
	return info.Formats[0]
}

func TestNormalize_Classification(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		wantOK   bool
		wantKind Kind
	}{
		{
			name:     "progressive",
			doc:      `{"format_id":"18","url":"https://m/18","vcodec":"avc1.42001E","acodec":"mp4a.40.2"}`,
			wantOK:   true,
			wantKind: KindProgressive,
		},
		{
			name:     "video only",
			doc:      `{"format_id":"137","url":"https://m/137","vcodec":"avc1.640028","acodec":"none"}`,
			wantOK:   true,
			wantKind: KindVideoOnly,
		},
		{
			name:     "audio codec missing counts as absent",
			doc:      `{"format_id":"hls-720","url":"https://m/hls","vcodec":"avc1"}`,
			wantOK:   true,
			wantKind: KindVideoOnly,
		},
		{
			name:     "audio only",
			doc:      `{"format_id":"140","url":"https://m/140","vcodec":"none","acodec":"mp4a.40.2"}`,
			wantOK:   true,
			wantKind: KindAudioOnly,
		},
		{
			name:   "storyboard has neither",
			doc:    `{"format_id":"sb0","url":"https://m/sb0","vcodec":"none","acodec":"none","ext":"mhtml"}`,
			wantOK: false,
		},
		{
			name:   "missing url",
			doc:    `{"format_id":"137","vcodec":"avc1","acodec":"none"}`,
			wantOK: false,
		},
		{
			name:   "missing identifier",
			doc:    `{"url":"https://m/x","vcodec":"avc1","acodec":"mp4a"}`,
			wantOK: false,
		},
		{
			name:     "innertube progressive from mime type",
			doc:      `{"itag":18,"url":"https://m/18","mimeType":"video/mp4; codecs=\"avc1.42001E, mp4a.40.2\""}`,
			wantOK:   true,
			wantKind: KindProgressive,
		},
		{
			name:     "innertube adaptive video from mime type",
			doc:      `{"itag":137,"url":"https://m/137","mimeType":"video/mp4; codecs=\"avc1.640028\""}`,
			wantOK:   true,
			wantKind: KindVideoOnly,
		},
		{
			name:     "innertube audio from mime type",
			doc:      `{"itag":251,"url":"https://m/251","mimeType":"audio/webm; codecs=\"opus\"","audioChannels":2}`,
			wantOK:   true,
			wantKind: KindAudioOnly,
		},
		{
			name:     "download url alias",
			doc:      `{"format_id":"140","downloadUrl":"https://m/140","acodec":"mp4a","vcodec":"none"}`,
			wantOK:   true,
			wantKind: KindAudioOnly,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := mustParseFormat(t, tc.doc)
			f, ok := Normalize(&raw, 0, nil)
			require.Equal(t, tc.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantKind, f.Kind())
			assert.True(t, f.HasVideo || f.HasAudio)
		})
	}
}

func TestNormalize_Fields(t *testing.T) {
	raw := mustParseFormat(t, `{
		"format_id": "137",
		"url": "https://m/137",
		"ext": "MP4",
		"vcodec": "avc1.640028",
		"acodec": "none",
		"height": 1080,
		"width": 1920,
		"fps": 60,
		"tbr": 4400.25,
		"filesize": null,
		"filesize_approx": "734003200",
		"language": " en ",
		"dynamic_range": "HDR10",
		"format_note": "Premium"
	}`)

	f, ok := Normalize(&raw, 3, nil)
	require.True(t, ok)

	assert.Equal(t, "137-3", f.ID)
	assert.Equal(t, "137", f.FormatID)
	assert.Equal(t, "mp4", f.Container)
	assert.Equal(t, 1080, f.Height)
	assert.Equal(t, 1920, f.Width)
	assert.Equal(t, 60.0, f.FPS)
	assert.Equal(t, int64(4400250), f.BitrateBps)
	assert.Equal(t, int64(734003200), f.SizeBytes)
	assert.Equal(t, "700 MB", f.SizeDisplay)
	assert.Equal(t, "EN", f.Language)
	assert.Equal(t, "1080p@60 • HDR10 • Premium", f.Label)
}

func TestNormalize_Sizes(t *testing.T) {
	testCases := []struct {
		name        string
		doc         string
		wantBytes   int64
		wantDisplay string
	}{
		{
			name:        "explicit wins over approximate",
			doc:         `{"format_id":"1","url":"u","acodec":"opus","filesize":2048,"filesize_approx":4096}`,
			wantBytes:   2048,
			wantDisplay: "2.0 KB",
		},
		{
			name:        "content length",
			doc:         `{"format_id":"1","url":"u","acodec":"opus","contentLength":"1536"}`,
			wantBytes:   1536,
			wantDisplay: "1.5 KB",
		},
		{
			name:        "approximate only",
			doc:         `{"format_id":"1","url":"u","acodec":"opus","filesize_approx":10240}`,
			wantBytes:   10240,
			wantDisplay: "10 KB",
		},
		{
			name:        "unknown is never fabricated",
			doc:         `{"format_id":"1","url":"u","acodec":"opus","filesize":0,"clen":"n/a"}`,
			wantBytes:   0,
			wantDisplay: SizeUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := mustParseFormat(t, tc.doc)
			f, ok := Normalize(&raw, 0, nil)
			require.True(t, ok)
			assert.Equal(t, tc.wantBytes, f.SizeBytes)
			assert.Equal(t, tc.wantDisplay, f.SizeDisplay)
		})
	}
}

func TestNormalize_Labels(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "thirty fps has no suffix",
			doc:  `{"format_id":"22","url":"u","vcodec":"avc1","acodec":"mp4a","height":720,"fps":30,"dynamic_range":"SDR","format_note":"default"}`,
			want: "720p",
		},
		{
			name: "fractional fps",
			doc:  `{"format_id":"x","url":"u","vcodec":"avc1","height":480,"fps":29.97}`,
			want: "480p@29.97",
		},
		{
			name: "resolution when height is missing",
			doc:  `{"format_id":"x","url":"u","vcodec":"avc1","resolution":"640x360p"}`,
			want: "640x360p",
		},
		{
			name: "height parsed from quality label",
			doc:  `{"itag":299,"url":"u","mimeType":"video/mp4; codecs=\"avc1.64002a\"","qualityLabel":"1080p60"}`,
			want: "1080p@60",
		},
		{
			name: "falls back to format id",
			doc:  `{"format_id":"hls-meta","url":"u","vcodec":"avc1"}`,
			want: "hls-meta",
		},
		{
			name: "audio with bitrate",
			doc:  `{"format_id":"140","url":"u","vcodec":"none","acodec":"mp4a","abr":129.476,"language":"en-US"}`,
			want: "EN-US • 129 kbps",
		},
		{
			name: "audio with sample rate only",
			doc:  `{"format_id":"a","url":"u","vcodec":"none","acodec":"mp4a","asr":44100}`,
			want: "44100 Hz",
		},
		{
			name: "dubbed audio carries the track name",
			doc:  `{"format_id":"251","url":"u","vcodec":"none","acodec":"opus","abr":128,"language":"de","audio_track":{"displayName":"German (dubbed)"}}`,
			want: "DE • German (dubbed) • 128 kbps",
		},
		{
			name: "audio without details",
			doc:  `{"format_id":"a","url":"u","vcodec":"none","acodec":"mp4a"}`,
			want: "Audio",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := mustParseFormat(t, tc.doc)
			f, ok := Normalize(&raw, 0, nil)
			require.True(t, ok)
			assert.Equal(t, tc.want, f.Label)
		})
	}
}

func TestParseInfo_ToleratesWrongTypes(t *testing.T) {
	info, err := ParseInfo([]byte(`{
		"id": "dQw4w9WgXcQ",
		"title": 42,
		"duration": "212.5",
		"language_preference": -1,
		"formats": [{"format_id": 140, "url": "u", "acodec": "mp4a", "vcodec": "none", "height": "tall", "audio_track": ["x"]}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "", info.Title.String())
	assert.Equal(t, "", info.LanguagePreference.String())
	assert.Equal(t, 212.5, info.Duration.Value)
	require.Len(t, info.Formats, 1)
	assert.Equal(t, "140", info.Formats[0].ProviderID())
	assert.False(t, info.Formats[0].Height.Valid)
	assert.Nil(t, info.Formats[0].Track())
}

func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		in   int64
		want string
	}{
		{0, SizeUnknown},
		{-5, SizeUnknown},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{10 * 1024, "10 KB"},
		{5767168, "5.5 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatBytes(tc.in), "FormatBytes(%d)", tc.in)
	}
}

func TestParseInfo_SkipsMalformedEntries(t *testing.T) {
	info, err := ParseInfo([]byte(`{
		"id": "abcdefghijk",
		"thumbnails": ["bad", {"url": "https://i/hq.jpg", "width": 480}],
		"audioTracks": {"id": "en.4"},
		"formats": [
			"junk",
			7,
			{"format_id": "22", "url": "https://m/22", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a", "height": 720},
			[1, 2],
			{"format_id": "140", "url": "https://m/140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a", "abr": 128}
		]
	}`))
	require.NoError(t, err)

	require.Len(t, info.Formats, 2)
	assert.Equal(t, "22", info.Formats[0].ProviderID())
	assert.Equal(t, "140", info.Formats[1].ProviderID())
	require.Len(t, info.Thumbnails, 1)
	assert.Equal(t, "https://i/hq.jpg", info.Thumbnails[0].URL.String())
	assert.Empty(t, info.AudioTracks)

	c := BuildCatalog("abcdefghijk", info)
	require.Len(t, c.VideoOptions, 1)
	assert.Equal(t, "22", c.VideoOptions[0].Selector)
	require.Len(t, c.AudioOptions, 1)
}

func TestParseInfo_NonArrayLists(t *testing.T) {
	info, err := ParseInfo([]byte(`{"thumbnails": "oops", "audioTracks": {}, "formats": null}`))
	require.NoError(t, err)

	assert.Empty(t, info.Thumbnails)
	assert.Empty(t, info.AudioTracks)
	assert.Empty(t, info.Formats)
}

func TestNumber_Positive(t *testing.T) {
	testCases := []struct {
		doc   string
		want  float64
		valid bool
	}{
		{`128`, 128, true},
		{`"4.5"`, 4.5, true},
		{`0`, 0, false},
		{`-3`, 0, false},
		{`"Infinity"`, 0, false},
		{`"-Infinity"`, 0, false},
		{`"NaN"`, 0, false},
		{`"1e306"`, 0, false},
		{`1e300`, 0, false},
		{`null`, 0, false},
	}

	for _, tc := range testCases {
		var n Number
		require.NoError(t, n.UnmarshalJSON([]byte(tc.doc)))
		got, ok := n.Positive()
		assert.Equal(t, tc.valid, ok, "Positive(%s)", tc.doc)
		assert.Equal(t, tc.want, got, "Positive(%s)", tc.doc)
	}
}

func TestNormalize_IgnoresOutOfRangeNumbers(t *testing.T) {
	raw := mustParseFormat(t, `{
		"format_id": "140",
		"url": "https://m/140",
		"vcodec": "none",
		"acodec": "mp4a",
		"tbr": "1e306",
		"abr": "Infinity",
		"asr": "-Infinity",
		"filesize": "1e300",
		"clen": "Infinity"
	}`)

	f, ok := Normalize(&raw, 0, nil)
	require.True(t, ok)

	assert.Zero(t, f.BitrateBps)
	assert.Zero(t, f.AudioBitrateBps)
	assert.Zero(t, f.SampleRateHz)
	assert.Zero(t, f.SizeBytes)
	assert.Equal(t, SizeUnknown, f.SizeDisplay)
}

func TestNormalize_YtdlpTrackHints(t *testing.T) {
	testCases := []struct {
		name         string
		doc          string
		wantNil      bool
		wantDub      bool
		wantDesc     bool
		wantOriginal bool
		wantDefault  bool
		wantLanguage string
	}{
		{
			name:    "dubbed note",
			doc:     `{"format_id":"251-1","url":"u","vcodec":"none","acodec":"opus","format_note":"Spanish (Latin America) dubbed-auto, medium","language":"es-419","language_preference":-1}`,
			wantDub: true,
		},
		{
			name:         "original default note and rank",
			doc:          `{"format_id":"251-0","url":"u","vcodec":"none","acodec":"opus","format_note":"English (US) original (default), medium","language":"en-US","language_preference":10}`,
			wantOriginal: true,
			wantDefault:  true,
		},
		{
			name:     "descriptive rank",
			doc:      `{"format_id":"251-2","url":"u","vcodec":"none","acodec":"opus","format_note":"English descriptive, low","language_preference":-10}`,
			wantDesc: true,
		},
		{
			name:    "plain note says nothing",
			doc:     `{"format_id":"140","url":"u","vcodec":"none","acodec":"mp4a","format_note":"medium","language_preference":-1}`,
			wantNil: true,
		},
		{
			name:         "format level track language",
			doc:          `{"format_id":"140","url":"u","vcodec":"none","acodec":"mp4a","audio_track_language":"de","audio_track":{"id":"de.3","name":"German"}}`,
			wantLanguage: "DE",
		},
		{
			name:         "track language name",
			doc:          `{"format_id":"140","url":"u","vcodec":"none","acodec":"mp4a","audio_track":{"id":"fr.1","name":"French","language_name":"fr"}}`,
			wantLanguage: "FR",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := mustParseFormat(t, tc.doc)
			f, ok := Normalize(&raw, 0, nil)
			require.True(t, ok)

			if tc.wantNil {
				assert.Nil(t, f.AudioTrack)
				return
			}
			require.NotNil(t, f.AudioTrack)
			assert.Equal(t, tc.wantDub, f.AudioTrack.IsDub)
			assert.Equal(t, tc.wantDesc, f.AudioTrack.IsDescription)
			assert.Equal(t, tc.wantOriginal, f.AudioTrack.IsOriginal)
			assert.Equal(t, tc.wantDefault, f.AudioTrack.IsDefault)
			if tc.wantLanguage != "" {
				assert.Equal(t, tc.wantLanguage, f.AudioTrack.Language)
			}
		})
	}
}

func TestBuildCatalog_YtdlpOriginalBeatsLouderDub(t *testing.T) {
	info, err := ParseInfo([]byte(`{
		"id": "abcdefghijk",
		"formats": [
			{"format_id": "248", "url": "https://m/248", "ext": "webm", "vcodec": "vp9", "acodec": "none", "height": 1080},
			{"format_id": "251-1", "url": "https://m/251-1", "ext": "webm", "vcodec": "none", "acodec": "opus", "abr": 160,
			 "language": "es", "language_preference": -1, "format_note": "Spanish dubbed-auto, medium"},
			{"format_id": "251-0", "url": "https://m/251-0", "ext": "webm", "vcodec": "none", "acodec": "opus", "abr": 130,
			 "language": "en", "language_preference": 10, "format_note": "English original (default), medium"}
		]
	}`))
	require.NoError(t, err)

	c := BuildCatalog("abcdefghijk", info)

	require.Len(t, c.VideoOptions, 1)
	assert.Equal(t, "248+251-0", c.VideoOptions[0].Selector)
}
