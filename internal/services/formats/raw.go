package formats

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxNumber bounds numeric fields so that scaled conversions to int64
// cannot overflow.
const maxNumber = 1e15

// Number is an optional numeric field. Providers send numbers, numeric
// strings or null; anything else decodes as absent.
type Number struct {
	Value float64
	Valid bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		raw = strings.TrimSpace(raw)
	} else {
		raw = string(data)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// Positive reports the value when it is known, finite and within
// (0, maxNumber].
func (n Number) Positive() (float64, bool) {
	if n.Valid && n.Value > 0 && n.Value <= maxNumber && !math.IsInf(n.Value, 0) {
		return n.Value, true
	}
	return 0, false
}

// Text is an optional string field. Non-string JSON values decode as empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
	}
	return nil
}

func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Ident is an identifier that may arrive as a string or a bare number
// (Innertube itags).
type Ident string

func (i *Ident) UnmarshalJSON(data []byte) error {
	*i = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*i = Ident(strings.TrimSpace(s))
		}
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err == nil {
		*i = Ident(data)
	}
	return nil
}

func (i Ident) String() string {
	return string(i)
}

// Flag is an optional boolean marker; true, non-zero numbers and
// "true"/"yes"/"1" count as set.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = false
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*f = true
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "true", "yes", "1":
				*f = true
			}
		}
	default:
		if v, err := strconv.ParseFloat(string(data), 64); err == nil && v != 0 {
			*f = true
		}
	}
	return nil
}

// Preference is a format's language_preference. Innertube-style providers
// send a language tag; yt-dlp sends a numeric rank.
type Preference struct {
	Tag  string
	Rank Number
}

func (p *Preference) UnmarshalJSON(data []byte) error {
	*p = Preference{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			p.Tag = strings.TrimSpace(s)
		}
		return nil
	}
	return p.Rank.UnmarshalJSON(data)
}

// TrackDescriptor is an audio-track description as sent by a provider,
// either a bare string or an object with inconsistently named fields.
type TrackDescriptor struct {
	ID          string
	Name        string
	DisplayName string
	Kind        string
	Type        string
	Language    string
	Default     bool
	Original    bool
}

type trackDescriptorJSON struct {
	ID                  Ident `json:"id"`
	AudioTrackID        Ident `json:"audioTrackId"`
	AudioTrackIDSnake   Ident `json:"audio_track_id"`
	FormatID            Ident `json:"format_id"`
	UID                 Ident `json:"uid"`
	Name                Text  `json:"name"`
	DisplayName         Text  `json:"displayName"`
	DisplayNameSnake    Text  `json:"display_name"`
	Kind                Text  `json:"kind"`
	Type                Text  `json:"type"`
	Language            Text  `json:"language"`
	LanguageCode        Text  `json:"languageCode"`
	LanguageCodeSnake   Text  `json:"language_code"`
	LanguageName        Text  `json:"language_name"`
	Default             Flag  `json:"default"`
	IsDefault           Flag  `json:"isDefault"`
	IsDefaultSnake      Flag  `json:"is_default"`
	AudioIsDefault      Flag  `json:"audioIsDefault"`
	AudioIsDefaultSnake Flag  `json:"audio_is_default"`
	Original            Flag  `json:"original"`
	IsOriginal          Flag  `json:"isOriginal"`
	IsOriginalSnake     Flag  `json:"is_original"`
}

func (d *TrackDescriptor) UnmarshalJSON(data []byte) error {
	*d = TrackDescriptor{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			s = strings.TrimSpace(s)
			d.ID = s
			d.Name = s
		}
	case '{':
		var aux trackDescriptorJSON
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil
		}
		d.ID = firstNonEmpty(aux.ID.String(), aux.AudioTrackID.String(), aux.AudioTrackIDSnake.String(), aux.FormatID.String(), aux.UID.String())
		d.Name = aux.Name.String()
		d.DisplayName = firstNonEmpty(aux.DisplayName.String(), aux.DisplayNameSnake.String())
		d.Kind = aux.Kind.String()
		d.Type = aux.Type.String()
		d.Language = firstNonEmpty(aux.Language.String(), aux.LanguageCode.String(), aux.LanguageCodeSnake.String(), aux.LanguageName.String())
		d.Default = bool(aux.Default || aux.IsDefault || aux.IsDefaultSnake || aux.AudioIsDefault || aux.AudioIsDefaultSnake)
		d.Original = bool(aux.Original || aux.IsOriginal || aux.IsOriginalSnake)
	}
	return nil
}

// IsZero reports whether the descriptor carries no information.
func (d *TrackDescriptor) IsZero() bool {
	return d == nil || *d == (TrackDescriptor{})
}

// RawFormat is one untrusted format record from a probe.
type RawFormat struct {
	FormatID Ident `json:"format_id"`
	Itag     Ident `json:"itag"`

	URL         Text `json:"url"`
	DownloadURL Text `json:"downloadUrl"`
	Href        Text `json:"href"`

	Ext      Text `json:"ext"`
	MimeType Text `json:"mimeType"`
	VCodec   Text `json:"vcodec"`
	ACodec   Text `json:"acodec"`

	Width        Number `json:"width"`
	Height       Number `json:"height"`
	FPS          Number `json:"fps"`
	Resolution   Text   `json:"resolution"`
	QualityLabel Text   `json:"qualityLabel"`
	Quality      Text   `json:"quality"`
	Label        Text   `json:"label"`
	DynamicRange Text   `json:"dynamic_range"`
	FormatNote   Text   `json:"format_note"`

	TBR            Number `json:"tbr"`
	ABR            Number `json:"abr"`
	ASR            Number `json:"asr"`
	Bitrate        Number `json:"bitrate"`
	AverageBitrate Number `json:"averageBitrate"`
	AudioChannels  Number `json:"audioChannels"`
	AudioQuality   Text   `json:"audioQuality"`

	Filesize            Number `json:"filesize"`
	ContentLength       Number `json:"contentLength"`
	Clen                Number `json:"clen"`
	Size                Number `json:"size"`
	FilesizeApprox      Number `json:"filesize_approx"`
	ApproxFileSizeBytes Number `json:"approxFileSizeBytes"`

	Language           Text       `json:"language"`
	LanguageAlt        Text       `json:"language_alt"`
	LanguagePreference Preference `json:"language_preference"`

	AudioTrack              *TrackDescriptor `json:"audio_track"`
	AudioTrackCamel         *TrackDescriptor `json:"audioTrack"`
	AudioTrackID            Ident            `json:"audio_track_id"`
	AudioTrackIDCamel       Ident            `json:"audioTrackId"`
	AudioTrackLanguage      Text             `json:"audio_track_language"`
	AudioTrackLanguageCamel Text             `json:"audioTrackLanguage"`
}

// ProviderID is the identifier the transcode backend understands.
func (r *RawFormat) ProviderID() string {
	return firstNonEmpty(r.FormatID.String(), r.Itag.String())
}

// MediaURL is the first usable media reference on the record.
func (r *RawFormat) MediaURL() string {
	return firstNonEmpty(r.URL.String(), r.DownloadURL.String(), r.Href.String())
}

// Track returns the attached audio-track descriptor, if any.
func (r *RawFormat) Track() *TrackDescriptor {
	if !r.AudioTrack.IsZero() {
		return r.AudioTrack
	}
	if !r.AudioTrackCamel.IsZero() {
		return r.AudioTrackCamel
	}
	return nil
}

// RawThumbnail is one entry of a probe's thumbnail list.
type RawThumbnail struct {
	URL    Text   `json:"url"`
	Width  Number `json:"width"`
	Height Number `json:"height"`
}

// List is an array field whose elements are decoded one by one. A
// non-array value decodes as empty and elements that fail to decode are
// skipped.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	out := make(List[T], 0, len(elems))
	for _, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// RawInfo is the top-level probe result.
type RawInfo struct {
	ID                 Text                  `json:"id"`
	Title              Text                  `json:"title"`
	Uploader           Text                  `json:"uploader"`
	Channel            Text                  `json:"channel"`
	Duration           Number                `json:"duration"`
	Thumbnail          Text                  `json:"thumbnail"`
	Thumbnails         List[RawThumbnail]    `json:"thumbnails"`
	OriginalLanguage   Text                  `json:"original_language"`
	Language           Text                  `json:"language"`
	LanguagePreference Text                  `json:"language_preference"`
	AudioTracks        List[TrackDescriptor] `json:"audioTracks"`
	Formats            List[RawFormat]       `json:"formats"`
}

// ParseInfo decodes a probe's JSON document.
func ParseInfo(data []byte) (*RawInfo, error) {
	var info RawInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
