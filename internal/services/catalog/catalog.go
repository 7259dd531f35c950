package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/Ghazanfar1991/youtube-app/internal/models"
	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/services/youtube"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// ListingCache stores listings per video id.
type ListingCache interface {
	GetListing(ctx context.Context, videoID string) (*models.FormatListResponse, error)
	SaveListing(ctx context.Context, videoID string, listing *models.FormatListResponse) error
}

// Service builds format listings. Concurrent requests for the same video
// share one probe.
type Service struct {
	prober youtube.Prober
	cache  ListingCache
	group  singleflight.Group
}

// NewService creates the listing service. cache may be nil.
func NewService(prober youtube.Prober, cache ListingCache) *Service {
	return &Service{prober: prober, cache: cache}
}

// List returns the listing for videoID. Errors wrap youtube.ErrAuthRequired
// or youtube.ErrProbeUnavailable, or are the context error.
func (s *Service) List(ctx context.Context, videoID string) (*models.FormatListResponse, error) {
	if s.cache != nil {
		listing, err := s.cache.GetListing(ctx, videoID)
		if err != nil {
			utils.LogWarn(ctx, "Listing cache read failed", utils.Fields{
				"video_id": videoID,
				"error":    err.Error(),
			})
		} else if listing != nil {
			utils.LogDebug(ctx, "Listing served from cache", utils.Fields{"video_id": videoID})
			return listing, nil
		}
	}

	// The shared probe outlives any single caller; the prober bounds it.
	probeCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(videoID, func() (interface{}, error) {
		return s.build(probeCtx, videoID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.FormatListResponse), nil
	}
}

func (s *Service) build(ctx context.Context, videoID string) (*models.FormatListResponse, error) {
	info, err := s.prober.Probe(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("listing formats: %w", err)
	}

	c := formats.BuildCatalog(videoID, info)
	listing := ToListing(c)
	utils.LogInfo(ctx, "Formats listed", utils.Fields{
		"video_id":      videoID,
		"raw_formats":   len(info.Formats),
		"video_options": len(listing.VideoStreams),
		"audio_options": len(listing.AudioStreams),
	})

	if s.cache != nil {
		if err := s.cache.SaveListing(ctx, videoID, listing); err != nil {
			utils.LogWarn(ctx, "Listing cache write failed", utils.Fields{
				"video_id": videoID,
				"error":    err.Error(),
			})
		}
	}
	return listing, nil
}
