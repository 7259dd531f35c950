package formats

// Option is one downloadable variant.
type Option struct {
	ID                string
	Kind              Kind
	Video             *StreamFormat
	Audio             *StreamFormat
	Label             string
	CombinedSizeBytes int64
	SizeDisplay       string
	OutputContainer   string
	Selector          string
	RequiresMerge     bool
}

// Primary is the stream whose attributes describe the option.
func (o *Option) Primary() *StreamFormat {
	if o.Video != nil {
		return o.Video
	}
	return o.Audio
}

// Pair combines a video-only stream with its chosen audio stream.
func Pair(video, audio StreamFormat) Option {
	size, display := combineSizes(video.SizeBytes, audio.SizeBytes)

	container := "mp4"
	if video.Container == "webm" && audio.Container == "webm" {
		container = "webm"
	}

	label := video.Label
	if tag := TrackTag(audio.AudioTrack); tag != "" {
		label += labelSeparator + tag
	}

	return Option{
		ID:                video.ID + "-merged-" + audio.ID,
		Kind:              KindVideoOnly,
		Video:             &video,
		Audio:             &audio,
		Label:             label,
		CombinedSizeBytes: size,
		SizeDisplay:       display,
		OutputContainer:   container,
		Selector:          video.FormatID + "+" + audio.FormatID,
		RequiresMerge:     true,
	}
}

// Single wraps a progressive or audio-only stream as an option.
func Single(f StreamFormat) Option {
	o := Option{
		ID:                f.ID,
		Kind:              f.Kind(),
		Label:             f.Label,
		CombinedSizeBytes: f.SizeBytes,
		SizeDisplay:       f.SizeDisplay,
		OutputContainer:   f.Container,
		Selector:          f.FormatID,
	}
	if f.HasVideo {
		o.Video = &f
	} else {
		o.Audio = &f
	}
	return o
}

// VideoOptions lists progressive streams followed by merged pairings.
// Video-only streams without any audio candidate are omitted.
func VideoOptions(b Buckets, primaryLanguage string) []Option {
	options := make([]Option, 0, len(b.Progressive)+len(b.VideoOnly))
	for _, f := range b.Progressive {
		options = append(options, Single(f))
	}
	for _, v := range b.VideoOnly {
		target := firstNonEmpty(v.Language, primaryLanguage)
		audio, ok := PickAudio(b.AudioOnly, target)
		if !ok {
			continue
		}
		options = append(options, Pair(v, audio))
	}
	return options
}

// AudioOptions lists audio-only streams as standalone options.
func AudioOptions(b Buckets) []Option {
	options := make([]Option, 0, len(b.AudioOnly))
	for _, a := range b.AudioOnly {
		options = append(options, Single(a))
	}
	return options
}
