package formats

import (
	"math"
)

// Catalog is the ranked view of one probe result.
type Catalog struct {
	VideoID         string
	Title           string
	Channel         string
	ThumbnailURL    string
	DurationSeconds int
	PrimaryLanguage string
	Formats         []StreamFormat
	Buckets         Buckets
	VideoOptions    []Option
	AudioOptions    []Option
}

// BuildCatalog runs the whole pipeline over a probe result.
func BuildCatalog(videoID string, info *RawInfo) *Catalog {
	tracks := NewTrackIndex(info.AudioTracks)
	normalized := NormalizeAll(info.Formats, tracks)
	buckets := Classify(normalized)
	primary := PrimaryLanguage(info, buckets.AudioOnly)

	c := &Catalog{
		VideoID:         firstNonEmpty(info.ID.String(), videoID),
		Title:           info.Title.String(),
		Channel:         firstNonEmpty(info.Uploader.String(), info.Channel.String()),
		ThumbnailURL:    ThumbnailURL(videoID, info),
		PrimaryLanguage: primary,
		Formats:         normalized,
		Buckets:         buckets,
		VideoOptions:    VideoOptions(buckets, primary),
		AudioOptions:    AudioOptions(buckets),
	}
	if d, ok := info.Duration.Positive(); ok {
		c.DurationSeconds = int(math.Round(d))
	}
	return c
}

// PrimaryLanguage is the media's declared language, else the language of
// the first audio stream flagged original or default.
func PrimaryLanguage(info *RawInfo, audio []StreamFormat) string {
	if lang := NormalizeLanguage(
		info.OriginalLanguage.String(),
		info.Language.String(),
		info.LanguagePreference.String(),
	); lang != "" {
		return lang
	}
	for i := range audio {
		if (audio[i].isOriginal() || audio[i].isDefault()) && audio[i].Language != "" {
			return audio[i].Language
		}
	}
	return ""
}

// ThumbnailURL prefers the last (largest) listed thumbnail.
func ThumbnailURL(videoID string, info *RawInfo) string {
	for i := len(info.Thumbnails) - 1; i >= 0; i-- {
		if u := info.Thumbnails[i].URL.String(); u != "" {
			return u
		}
	}
	if u := info.Thumbnail.String(); u != "" {
		return u
	}
	id := firstNonEmpty(info.ID.String(), videoID)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
