package downloader

import (
	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// State is a step of the download ladder.
type State string

const (
	StateRemux        State = "remux"
	StateReEncode     State = "re-encode"
	StateExtractAudio State = "extract-audio"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
	StateAuthRequired State = "auth-required"
	StateCancelled    State = "cancelled"
)

// Terminal reports whether no further attempt follows s.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateFailed, StateAuthRequired, StateCancelled:
		return true
	}
	return false
}

type outcome int

const (
	outcomeSucceeded outcome = iota
	outcomeFailed
	outcomeAuthRequired
	outcomeCancelled
)

func (o outcome) String() string {
	switch o {
	case outcomeSucceeded:
		return "succeeded"
	case outcomeAuthRequired:
		return "auth required"
	case outcomeCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

func initialState(media formats.MediaType) State {
	if media == formats.MediaAudio {
		return StateExtractAudio
	}
	return StateRemux
}

// transition is the whole ladder. Auth and cancellation end it from any
// attempt; a plain failure only advances remux to re-encode.
func transition(s State, o outcome) State {
	if s.Terminal() {
		return s
	}
	switch o {
	case outcomeSucceeded:
		return StateSucceeded
	case outcomeAuthRequired:
		return StateAuthRequired
	case outcomeCancelled:
		return StateCancelled
	}
	if s == StateRemux {
		return StateReEncode
	}
	return StateFailed
}

// strategyArgs are the yt-dlp flags specific to an attempt.
func strategyArgs(s State, ext string) []string {
	switch s {
	case StateRemux:
		return []string{"--merge-output-format", ext}
	case StateReEncode:
		return []string{"--recode-video", ext}
	case StateExtractAudio:
		return []string{"--extract-audio", "--audio-format", ext}
	}
	return nil
}

var (
	videoContainers = map[string]bool{"mp4": true, "webm": true, "mkv": true}
	audioFormats    = map[string]bool{"m4a": true, "mp3": true, "opus": true, "wav": true, "aac": true, "flac": true, "vorbis": true}
)

// OutputExtension maps a requested extension to one the ladder can
// produce for the media type.
func OutputExtension(media formats.MediaType, requested string) string {
	requested = utils.SanitizeExtension(requested, "")
	if media == formats.MediaAudio {
		if audioFormats[requested] {
			return requested
		}
		return "m4a"
	}
	if videoContainers[requested] {
		return requested
	}
	return "mp4"
}
