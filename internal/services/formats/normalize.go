package formats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the bucket a stream belongs to.
type Kind string

const (
	KindProgressive Kind = "progressive"
	KindVideoOnly   Kind = "videoOnly"
	KindAudioOnly   Kind = "audioOnly"
)

// StreamFormat is the canonical form of one probe record. Zero numeric
// fields mean the provider did not report the value.
type StreamFormat struct {
	ID              string
	FormatID        string
	URL             string
	Container       string
	HasVideo        bool
	HasAudio        bool
	Width           int
	Height          int
	FPS             float64
	BitrateBps      int64
	AudioBitrateBps int64
	SampleRateHz    int64
	SizeBytes       int64
	SizeDisplay     string
	Language        string
	AudioTrack      *AudioTrackInfo
	DynamicRange    string
	FormatNote      string
	Label           string
}

func (f *StreamFormat) Kind() Kind {
	switch {
	case f.HasVideo && f.HasAudio:
		return KindProgressive
	case f.HasVideo:
		return KindVideoOnly
	default:
		return KindAudioOnly
	}
}

// EffectiveAudioBitrate is the audio bitrate, falling back to the overall
// bitrate when the provider reports only that.
func (f *StreamFormat) EffectiveAudioBitrate() int64 {
	if f.AudioBitrateBps > 0 {
		return f.AudioBitrateBps
	}
	return f.BitrateBps
}

func (f *StreamFormat) isDub() bool {
	return f.AudioTrack != nil && f.AudioTrack.IsDub
}

func (f *StreamFormat) isDescription() bool {
	return f.AudioTrack != nil && f.AudioTrack.IsDescription
}

func (f *StreamFormat) isOriginal() bool {
	return f.AudioTrack != nil && f.AudioTrack.IsOriginal
}

func (f *StreamFormat) isDefault() bool {
	return f.AudioTrack != nil && f.AudioTrack.IsDefault
}

var (
	codecsRe     = regexp.MustCompile(`codecs="([^"]*)"`)
	qualityRe    = regexp.MustCompile(`(\d{3,4})p(\d{2,3})?`)
	resolutionRe = regexp.MustCompile(`^(\d+)x(\d+)$`)
)

// mime subtype to file extension
var mimeExtensions = map[string]string{
	"video/mp4":  "mp4",
	"video/webm": "webm",
	"video/3gpp": "3gp",
	"audio/mp4":  "m4a",
	"audio/webm": "webm",
	"audio/mpeg": "mp3",
	"audio/ogg":  "ogg",
}

// Normalize maps one raw record to a StreamFormat. Records without a media
// reference or without any video or audio codec are dropped.
func Normalize(raw *RawFormat, index int, tracks TrackIndex) (StreamFormat, bool) {
	formatID := raw.ProviderID()
	url := raw.MediaURL()
	if formatID == "" || url == "" {
		return StreamFormat{}, false
	}

	vcodec, acodec := codecFields(raw)
	f := StreamFormat{
		ID:       formatID + "-" + strconv.Itoa(index),
		FormatID: formatID,
		URL:      url,
		HasVideo: codecPresent(vcodec),
		HasAudio: codecPresent(acodec),
	}
	if !f.HasVideo && !f.HasAudio {
		return StreamFormat{}, false
	}

	f.Container = containerOf(raw)
	f.Width = roundInt(raw.Width)
	f.Height, f.FPS = dimensions(raw)

	if v, ok := raw.TBR.Positive(); ok {
		f.BitrateBps = int64(math.Round(v * 1000))
	} else if v, ok := raw.Bitrate.Positive(); ok {
		f.BitrateBps = int64(math.Round(v))
	} else if v, ok := raw.AverageBitrate.Positive(); ok {
		f.BitrateBps = int64(math.Round(v))
	}
	if v, ok := raw.ABR.Positive(); ok {
		f.AudioBitrateBps = int64(math.Round(v * 1000))
	} else if !f.HasVideo {
		f.AudioBitrateBps = f.BitrateBps
	}
	if v, ok := raw.ASR.Positive(); ok {
		f.SampleRateHz = int64(math.Round(v))
	}

	f.SizeBytes = sizeOf(raw)
	f.SizeDisplay = FormatBytes(f.SizeBytes)

	if f.HasAudio {
		trackID := firstNonEmpty(raw.AudioTrackID.String(), raw.AudioTrackIDCamel.String())
		f.AudioTrack = withFormatHints(ClassifyTrack(raw.Track(), trackID, tracks), raw)
	}
	var trackLanguage string
	if f.AudioTrack != nil {
		trackLanguage = f.AudioTrack.Language
	}
	f.Language = NormalizeLanguage(
		raw.LanguagePreference.Tag,
		raw.Language.String(),
		raw.LanguageAlt.String(),
		trackLanguage,
	)

	f.DynamicRange = raw.DynamicRange.String()
	f.FormatNote = raw.FormatNote.String()

	if f.HasVideo {
		f.Label = videoLabel(&f, raw.Resolution.String())
	} else {
		f.Label = audioLabel(&f)
	}

	return f, true
}

// codecFields returns the codec fields, deriving them from the mime type
// when the provider reports neither.
func codecFields(raw *RawFormat) (string, string) {
	vcodec, acodec := raw.VCodec.String(), raw.ACodec.String()
	if vcodec != "" || acodec != "" {
		return vcodec, acodec
	}

	mime := strings.ToLower(raw.MimeType.String())
	var codecs []string
	if m := codecsRe.FindStringSubmatch(mime); m != nil {
		for _, c := range strings.Split(m[1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				codecs = append(codecs, c)
			}
		}
	}

	switch {
	case strings.HasPrefix(mime, "video/"):
		vcodec, acodec = "unknown", "none"
		if len(codecs) > 0 {
			vcodec = codecs[0]
		}
		if len(codecs) > 1 {
			acodec = codecs[1]
		} else if _, ok := raw.AudioChannels.Positive(); ok || raw.AudioQuality.String() != "" {
			acodec = "unknown"
		}
	case strings.HasPrefix(mime, "audio/"):
		vcodec, acodec = "none", "unknown"
		if len(codecs) > 0 {
			acodec = codecs[0]
		}
	}
	return vcodec, acodec
}

func codecPresent(codec string) bool {
	codec = strings.ToLower(strings.TrimSpace(codec))
	return codec != "" && codec != "none"
}

func containerOf(raw *RawFormat) string {
	if ext := strings.ToLower(raw.Ext.String()); ext != "" {
		return ext
	}
	mime := strings.ToLower(raw.MimeType.String())
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	if ext, ok := mimeExtensions[strings.TrimSpace(mime)]; ok {
		return ext
	}
	return "mp4"
}

func dimensions(raw *RawFormat) (int, float64) {
	height := roundInt(raw.Height)
	fps, _ := raw.FPS.Positive()

	if height == 0 {
		if m := resolutionRe.FindStringSubmatch(raw.Resolution.String()); m != nil {
			height, _ = strconv.Atoi(m[2])
		}
	}
	for _, label := range []string{raw.QualityLabel.String(), raw.Quality.String(), raw.Label.String()} {
		if height > 0 && fps > 0 {
			break
		}
		m := qualityRe.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		if height == 0 {
			height, _ = strconv.Atoi(m[1])
		}
		if fps == 0 && m[2] != "" {
			fps, _ = strconv.ParseFloat(m[2], 64)
		}
	}
	return height, fps
}

func sizeOf(raw *RawFormat) int64 {
	for _, n := range []Number{raw.Filesize, raw.ContentLength, raw.Clen, raw.Size, raw.FilesizeApprox, raw.ApproxFileSizeBytes} {
		if v, ok := n.Positive(); ok {
			return int64(math.Round(v))
		}
	}
	return 0
}

func roundInt(n Number) int {
	if v, ok := n.Positive(); ok {
		return int(math.Round(v))
	}
	return 0
}
