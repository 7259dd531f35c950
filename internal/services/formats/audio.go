package formats

// audioRule is one step of the audio selection ladder.
type audioRule func(f *StreamFormat, languageMatch bool) bool

func plain(f *StreamFormat) bool {
	return !f.isDub() && !f.isDescription()
}

// Rules are tried in order; the first rule with a match wins.
var audioRules = []audioRule{
	func(f *StreamFormat, lang bool) bool { return lang && f.isOriginal() && plain(f) },
	func(f *StreamFormat, lang bool) bool { return lang && f.isDefault() && plain(f) },
	func(f *StreamFormat, lang bool) bool { return lang && plain(f) },
	func(f *StreamFormat, _ bool) bool { return f.isOriginal() && plain(f) },
	func(f *StreamFormat, _ bool) bool { return f.isDefault() && plain(f) },
	func(f *StreamFormat, _ bool) bool { return plain(f) },
}

// PickAudio selects the audio stream to pair with a video-only stream.
// candidates must be sorted by bitrate descending; the highest-bitrate
// candidate is the last resort. It returns false when there are no
// candidates.
func PickAudio(candidates []StreamFormat, targetLanguage string) (StreamFormat, bool) {
	if len(candidates) == 0 {
		return StreamFormat{}, false
	}

	for _, rule := range audioRules {
		for i := range candidates {
			c := &candidates[i]
			if rule(c, languageMatches(c.Language, targetLanguage)) {
				return *c, true
			}
		}
	}

	return candidates[0], true
}
