package models

import (
	"time"
)

// FormatListResponse is the format listing of one video.
type FormatListResponse struct {
	ID              string             `json:"id" bson:"id"`
	Title           string             `json:"title" bson:"title"`
	ThumbnailURL    string             `json:"thumbnailUrl" bson:"thumbnail_url"`
	Channel         string             `json:"channel" bson:"channel"`
	DurationSeconds int                `json:"durationSeconds" bson:"duration_seconds"`
	VideoStreams    []PairedOptionView `json:"videoStreams" bson:"video_streams"`
	AudioStreams    []PairedOptionView `json:"audioStreams" bson:"audio_streams"`
}

// PairedOptionView is one downloadable option. DownloadFormat is the
// selector to pass back to the download endpoint.
type PairedOptionView struct {
	ID             string          `json:"id" bson:"id"`
	Label          string          `json:"label" bson:"label"`
	Size           string          `json:"size" bson:"size"`
	Bitrate        int64           `json:"bitrate,omitempty" bson:"bitrate,omitempty"`
	AudioBitrate   int64           `json:"audioBitrate,omitempty" bson:"audio_bitrate,omitempty"`
	FPS            float64         `json:"fps,omitempty" bson:"fps,omitempty"`
	Height         int             `json:"height,omitempty" bson:"height,omitempty"`
	Language       string          `json:"language,omitempty" bson:"language,omitempty"`
	Extension      string          `json:"extension" bson:"extension"`
	DownloadFormat string          `json:"downloadFormat" bson:"download_format"`
	VideoFormatID  *string         `json:"videoFormatId" bson:"video_format_id"`
	AudioFormatID  *string         `json:"audioFormatId" bson:"audio_format_id"`
	RequiresMerge  bool            `json:"requiresMerge" bson:"requires_merge"`
	AudioTrack     *AudioTrackView `json:"audioTrack,omitempty" bson:"audio_track,omitempty"`
}

type AudioTrackView struct {
	ID            string `json:"id,omitempty" bson:"id,omitempty"`
	Kind          string `json:"kind,omitempty" bson:"kind,omitempty"`
	DisplayName   string `json:"displayName,omitempty" bson:"display_name,omitempty"`
	Language      string `json:"language,omitempty" bson:"language,omitempty"`
	IsDefault     bool   `json:"isDefault" bson:"is_default"`
	IsOriginal    bool   `json:"isOriginal" bson:"is_original"`
	IsDub         bool   `json:"isDub" bson:"is_dub"`
	IsDescription bool   `json:"isDescription" bson:"is_description"`
}

// CachedListing is a stored listing. Provider URLs expire, so entries are
// only valid for the configured TTL.
type CachedListing struct {
	VideoID  string             `bson:"video_id"`
	Listing  FormatListResponse `bson:"listing"`
	CachedAt time.Time          `bson:"cached_at"`
}

type DownloadQuery struct {
	ID        string `form:"id"`
	Format    string `form:"format"`
	Type      string `form:"type"`
	Ext       string `form:"ext"`
	Title     string `form:"title"`
	MaxHeight int    `form:"maxHeight"`
	MinHeight int    `form:"minHeight"`
}

type ThumbnailView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ThumbnailListResponse struct {
	VideoID    string          `json:"videoId"`
	Thumbnails []ThumbnailView `json:"thumbnails"`
}
