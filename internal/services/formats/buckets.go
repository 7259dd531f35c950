package formats

import (
	"sort"

	"github.com/samber/lo"
)

// Buckets holds normalized formats partitioned by media content.
type Buckets struct {
	Progressive []StreamFormat
	VideoOnly   []StreamFormat
	AudioOnly   []StreamFormat
}

type dedupeKey struct {
	formatID string
	url      string
}

// NormalizeAll normalizes every raw record, dropping unusable ones. Ids
// carry the record's position in the probe result.
func NormalizeAll(raws []RawFormat, tracks TrackIndex) []StreamFormat {
	out := make([]StreamFormat, 0, len(raws))
	for i := range raws {
		if f, ok := Normalize(&raws[i], i, tracks); ok {
			out = append(out, f)
		}
	}
	return out
}

// Dedupe drops formats whose (format id, url) pair was already seen,
// keeping the first occurrence.
func Dedupe(formats []StreamFormat) []StreamFormat {
	return lo.UniqBy(formats, func(f StreamFormat) dedupeKey {
		return dedupeKey{formatID: f.FormatID, url: f.URL}
	})
}

// Classify dedupes formats and partitions them into sorted buckets.
func Classify(formats []StreamFormat) Buckets {
	unique := Dedupe(formats)

	b := Buckets{
		Progressive: lo.Filter(unique, func(f StreamFormat, _ int) bool { return f.Kind() == KindProgressive }),
		VideoOnly:   lo.Filter(unique, func(f StreamFormat, _ int) bool { return f.Kind() == KindVideoOnly }),
		AudioOnly:   lo.Filter(unique, func(f StreamFormat, _ int) bool { return f.Kind() == KindAudioOnly }),
	}

	sortVideo(b.Progressive)
	sortVideo(b.VideoOnly)
	sort.SliceStable(b.AudioOnly, func(i, j int) bool {
		return b.AudioOnly[i].EffectiveAudioBitrate() > b.AudioOnly[j].EffectiveAudioBitrate()
	})

	return b
}

// FormatIDs is the set of provider format ids present in a probe result.
func FormatIDs(formats []StreamFormat) map[string]struct{} {
	ids := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		ids[f.FormatID] = struct{}{}
	}
	return ids
}

func sortVideo(formats []StreamFormat) {
	sort.SliceStable(formats, func(i, j int) bool {
		a, b := formats[i], formats[j]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		if a.FPS != b.FPS {
			return a.FPS > b.FPS
		}
		return a.BitrateBps > b.BitrateBps
	})
}
