package catalog

import (
	"github.com/samber/lo"

	"github.com/Ghazanfar1991/youtube-app/internal/models"
	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
)

// ToListing renders a catalog as the listing response.
func ToListing(c *formats.Catalog) *models.FormatListResponse {
	return &models.FormatListResponse{
		ID:              c.VideoID,
		Title:           c.Title,
		ThumbnailURL:    c.ThumbnailURL,
		Channel:         c.Channel,
		DurationSeconds: c.DurationSeconds,
		VideoStreams:    lo.Map(c.VideoOptions, optionView),
		AudioStreams:    lo.Map(c.AudioOptions, optionView),
	}
}

func optionView(o formats.Option, _ int) models.PairedOptionView {
	view := models.PairedOptionView{
		ID:             o.ID,
		Label:          o.Label,
		Size:           o.SizeDisplay,
		Extension:      o.OutputContainer,
		DownloadFormat: o.Selector,
		RequiresMerge:  o.RequiresMerge,
	}

	if v := o.Video; v != nil {
		view.VideoFormatID = lo.ToPtr(v.FormatID)
		view.Bitrate = v.BitrateBps
		view.FPS = v.FPS
		view.Height = v.Height
	}

	switch {
	case o.Audio != nil:
		a := o.Audio
		view.AudioFormatID = lo.ToPtr(a.FormatID)
		view.AudioBitrate = a.EffectiveAudioBitrate()
		view.Language = a.Language
		view.AudioTrack = trackView(a.AudioTrack)
		if o.Video == nil {
			view.Bitrate = a.BitrateBps
		}
	case o.Video != nil:
		// Progressive: one stream carries both.
		view.AudioBitrate = o.Video.AudioBitrateBps
		view.Language = o.Video.Language
		view.AudioTrack = trackView(o.Video.AudioTrack)
	}
	return view
}

func trackView(info *formats.AudioTrackInfo) *models.AudioTrackView {
	if info == nil {
		return nil
	}
	return &models.AudioTrackView{
		ID:            info.ID,
		Kind:          info.Kind,
		DisplayName:   info.DisplayName,
		Language:      info.Language,
		IsDefault:     info.IsDefault,
		IsOriginal:    info.IsOriginal,
		IsDub:         info.IsDub,
		IsDescription: info.IsDescription,
	}
}
