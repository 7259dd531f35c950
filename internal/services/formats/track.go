package formats

import (
	"strings"
)

var (
	dubMarkers         = []string{"dub", "translation", "voice", "interpre"}
	descriptionMarkers = []string{"description", "described", "descriptive", "commentary", "narration"}
	originalMarkers    = []string{"original", "main"}
)

// AudioTrackInfo is the canonical classification of an audio track's role.
// Flags are evaluated independently and more than one may be set.
type AudioTrackInfo struct {
	ID            string `json:"id,omitempty"`
	Kind          string `json:"kind,omitempty"`
	Name          string `json:"name,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	Language      string `json:"language,omitempty"`
	IsDefault     bool   `json:"isDefault"`
	IsOriginal    bool   `json:"isOriginal"`
	IsDub         bool   `json:"isDub"`
	IsDescription bool   `json:"isDescription"`
}

// TrackIndex maps provider track ids to the media-level track list.
type TrackIndex map[string]TrackDescriptor

// NewTrackIndex indexes descriptors by their id. Later duplicates are ignored.
func NewTrackIndex(tracks []TrackDescriptor) TrackIndex {
	index := make(TrackIndex, len(tracks))
	for _, t := range tracks {
		if t.ID == "" {
			continue
		}
		if _, exists := index[t.ID]; !exists {
			index[t.ID] = t
		}
	}
	return index
}

// ClassifyTrack merges the descriptor attached to a format with the indexed
// media-level entry for trackID and classifies the result. It returns nil
// when neither source says anything about the track.
func ClassifyTrack(desc *TrackDescriptor, trackID string, index TrackIndex) *AudioTrackInfo {
	var own TrackDescriptor
	if desc != nil {
		own = *desc
	}

	var mapped TrackDescriptor
	if key := firstNonEmpty(trackID, own.ID); key != "" {
		mapped = index[key]
	}

	if own == (TrackDescriptor{}) && mapped == (TrackDescriptor{}) {
		return nil
	}

	info := &AudioTrackInfo{
		ID:          firstNonEmpty(own.ID, mapped.ID, trackID),
		Kind:        firstNonEmpty(own.Kind, own.Type, mapped.Kind, mapped.Type),
		Name:        firstNonEmpty(own.Name, mapped.Name),
		DisplayName: firstNonEmpty(own.DisplayName, mapped.DisplayName),
		Language:    NormalizeLanguage(own.Language, mapped.Language),
	}

	descriptor := strings.ToLower(strings.Join([]string{
		own.ID, own.Name, own.DisplayName, own.Kind, own.Type,
		mapped.ID, mapped.Name, mapped.DisplayName, mapped.Kind, mapped.Type,
	}, " "))

	flagged := own.Default || own.Original || mapped.Default || mapped.Original

	info.IsDub = containsAny(descriptor, dubMarkers)
	info.IsDescription = containsAny(descriptor, descriptionMarkers)
	info.IsOriginal = flagged || containsAny(descriptor, originalMarkers)
	info.IsDefault = flagged

	return info
}

// yt-dlp language_preference ranks for original and descriptive tracks.
const (
	originalPreferenceRank    = 10
	descriptionPreferenceRank = -10
)

// withFormatHints folds format-level track hints into info: the
// audio_track_language fields, role words in format_note and a numeric
// language_preference rank. A format with no track descriptor gains one
// only when a hint says something.
func withFormatHints(info *AudioTrackInfo, raw *RawFormat) *AudioTrackInfo {
	note := strings.ToLower(raw.FormatNote.String())
	language := NormalizeLanguage(raw.AudioTrackLanguage.String(), raw.AudioTrackLanguageCamel.String())

	rank := raw.LanguagePreference.Rank
	dub := containsAny(note, dubMarkers)
	description := containsAny(note, descriptionMarkers) || (rank.Valid && rank.Value <= descriptionPreferenceRank)
	original := containsAny(note, originalMarkers) || (rank.Valid && rank.Value >= originalPreferenceRank)
	isDefault := strings.Contains(note, "default")

	if info == nil {
		if !dub && !description && !original && !isDefault && language == "" {
			return nil
		}
		info = &AudioTrackInfo{}
	}

	if language != "" {
		info.Language = language
	}
	info.IsDub = info.IsDub || dub
	info.IsDescription = info.IsDescription || description
	info.IsOriginal = info.IsOriginal || original
	info.IsDefault = info.IsDefault || isDefault
	return info
}

// TrackTag is the short track role shown in labels, empty for an ordinary
// original track.
func TrackTag(info *AudioTrackInfo) string {
	if info == nil {
		return ""
	}
	switch {
	case info.IsDub:
		return firstNonEmpty(info.DisplayName, info.Name, info.Kind, "Dub")
	case info.IsDescription:
		return firstNonEmpty(info.DisplayName, info.Name, info.Kind, "Description")
	case !info.IsOriginal:
		return firstNonEmpty(info.DisplayName, info.Name)
	}
	return ""
}

// NormalizeLanguage returns the first non-empty candidate, trimmed and
// upper-cased.
func NormalizeLanguage(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return strings.ToUpper(c)
		}
	}
	return ""
}

// languageMatches compares normalized tags, treating EN and EN-US as equal.
func languageMatches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return primarySubtag(a) == primarySubtag(b)
}

func primarySubtag(tag string) string {
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		return tag[:i]
	}
	return tag
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
