package youtube

import (
	"context"

	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
)

// Prober fetches the raw format listing of a video.
type Prober interface {
	// Probe returns the provider's metadata and format records. Errors wrap
	// ErrAuthRequired or ErrProbeUnavailable, or the context error when the
	// caller gave up.
	Probe(ctx context.Context, videoID string) (*formats.RawInfo, error)
}
