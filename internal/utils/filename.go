package utils

import (
	"regexp"
	"strings"
)

const maxTitleLength = 128

var (
	unsafeTitleChars = regexp.MustCompile(`(?i)[^a-z0-9_\-\s]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	nonAlphanumeric  = regexp.MustCompile(`[^a-z0-9]`)
)

var contentTypes = map[string]string{
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mkv":  "video/x-matroska",
	"m4a":  "audio/mp4",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"opus": "audio/ogg",
}

// SafeTitle reduces a title to letters, digits, '_' and '-', with
// whitespace runs collapsed to a single underscore.
func SafeTitle(title string) string {
	clean := unsafeTitleChars.ReplaceAllString(title, "")
	clean = whitespaceRun.ReplaceAllString(strings.TrimSpace(clean), "_")
	if len(clean) > maxTitleLength {
		clean = clean[:maxTitleLength]
	}
	if clean == "" {
		return "video"
	}
	return clean
}

// SanitizeExtension lowercases ext and strips everything but letters and
// digits, falling back to def.
func SanitizeExtension(ext, def string) string {
	clean := nonAlphanumeric.ReplaceAllString(strings.ToLower(ext), "")
	if clean == "" {
		return def
	}
	return clean
}

// ContentTypeForExtension maps an output extension to its mime type.
func ContentTypeForExtension(ext string) string {
	if ct, ok := contentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}
