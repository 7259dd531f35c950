package formats

import (
	"fmt"
	"strconv"
	"strings"
)

const labelSeparator = " • "

func videoLabel(f *StreamFormat, resolution string) string {
	var parts []string

	if f.Height > 0 {
		part := strconv.Itoa(f.Height) + "p"
		if f.FPS > 0 && f.FPS != 30 {
			part += "@" + strconv.FormatFloat(f.FPS, 'f', -1, 64)
		}
		parts = append(parts, part)
	} else if resolution != "" && !strings.EqualFold(resolution, "audio only") {
		parts = append(parts, resolution)
	}

	if f.DynamicRange != "" && !strings.EqualFold(f.DynamicRange, "sdr") {
		parts = append(parts, strings.ToUpper(f.DynamicRange))
	}
	if f.FormatNote != "" && !strings.EqualFold(f.FormatNote, "default") {
		parts = append(parts, f.FormatNote)
	}

	if len(parts) > 0 {
		return strings.Join(parts, labelSeparator)
	}
	return firstNonEmpty(f.FormatID, "Unknown quality")
}

func audioLabel(f *StreamFormat) string {
	var parts []string

	if f.Language != "" {
		parts = append(parts, f.Language)
	}
	if tag := TrackTag(f.AudioTrack); tag != "" {
		parts = append(parts, tag)
	}
	switch {
	case f.AudioBitrateBps > 0:
		parts = append(parts, fmt.Sprintf("%d kbps", (f.AudioBitrateBps+500)/1000))
	case f.SampleRateHz > 0:
		parts = append(parts, fmt.Sprintf("%d Hz", f.SampleRateHz))
	}

	if len(parts) == 0 {
		return "Audio"
	}
	return strings.Join(parts, labelSeparator)
}
