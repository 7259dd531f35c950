package youtube

import (
	"errors"
	"regexp"
)

var (
	// ErrMalformedReference means the input is not a YouTube URL or id.
	ErrMalformedReference = errors.New("malformed video reference")
	// ErrProbeUnavailable means format metadata could not be obtained.
	ErrProbeUnavailable = errors.New("probe unavailable")
	// ErrAuthRequired means YouTube demands a signed-in session.
	ErrAuthRequired = errors.New("youtube authentication required")
)

var loginRequiredRe = regexp.MustCompile(`(?i)sign in to confirm you.?re not a bot|login required`)

// RequiresLogin reports whether tool output carries YouTube's sign-in
// challenge.
func RequiresLogin(output string) bool {
	return loginRequiredRe.MatchString(output)
}
