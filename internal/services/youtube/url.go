package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	watchURLPrefix   = "https://www.youtube.com/watch?v="
	thumbnailURLBase = "https://img.youtube.com/vi/"
)

var (
	videoIDRe    = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	idCharsRunRe = regexp.MustCompile(`[A-Za-z0-9_-]{11,}`)
)

// ExtractVideoID accepts a bare id or any common YouTube URL form and
// returns the 11-character video id.
func ExtractVideoID(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrMalformedReference)
	}
	if videoIDRe.MatchString(trimmed) {
		return trimmed, nil
	}

	if id, ok := idFromURL(trimmed); ok {
		return id, nil
	}

	// The last 11 characters of the first id-shaped run.
	if run := idCharsRunRe.FindString(trimmed); run != "" {
		return run[len(run)-11:], nil
	}
	return "", fmt.Errorf("%w: %q", ErrMalformedReference, trimmed)
}

func idFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(u.Hostname()), "m."), "www.")

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	switch {
	case host == "youtu.be":
		if len(segments) > 0 && videoIDRe.MatchString(segments[0]) {
			return segments[0], true
		}
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if v := u.Query().Get("v"); videoIDRe.MatchString(v) {
			return v, true
		}
		if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				if videoIDRe.MatchString(segments[1]) {
					return segments[1], true
				}
			}
			last, previous := segments[len(segments)-1], segments[len(segments)-2]
			if videoIDRe.MatchString(last) {
				return last, true
			}
			if videoIDRe.MatchString(previous) {
				return previous, true
			}
		}
	}
	return "", false
}

// WatchURL is the canonical page URL handed to yt-dlp.
func WatchURL(videoID string) string {
	return watchURLPrefix + videoID
}

// Thumbnail is one of the standard still images YouTube serves per video.
type Thumbnail struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

var thumbnailNames = []string{"maxresdefault", "sddefault", "hqdefault", "mqdefault", "default"}

// Thumbnails lists the standard thumbnail URLs, largest first.
func Thumbnails(videoID string) []Thumbnail {
	thumbs := make([]Thumbnail, 0, len(thumbnailNames))
	for _, name := range thumbnailNames {
		thumbs = append(thumbs, Thumbnail{
			Name: name,
			URL:  thumbnailURLBase + videoID + "/" + name + ".jpg",
		})
	}
	return thumbs
}
