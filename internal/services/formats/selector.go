package formats

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MediaType is the kind of output a download produces.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// DefaultMaxHeight caps the generic video selection.
const DefaultMaxHeight = 1080

var ErrInvalidSelector = errors.New("invalid format selector")

var (
	selectorComponentRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	ordinalSuffixRe     = regexp.MustCompile(`-\d+$`)
)

// Selector is a single format id or a video+audio pair.
type Selector struct {
	Components []string
}

func (s Selector) String() string {
	return strings.Join(s.Components, "+")
}

// ParseSelector validates the syntax of a selector expression.
func ParseSelector(expr string) (Selector, error) {
	expr = strings.TrimSpace(expr)
	switch strings.ToLower(expr) {
	case "", "undefined", "null":
		return Selector{}, ErrInvalidSelector
	}

	parts := strings.Split(expr, "+")
	if len(parts) > 2 {
		return Selector{}, fmt.Errorf("%w: %q has more than two components", ErrInvalidSelector, expr)
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !selectorComponentRe.MatchString(p) {
			return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, expr)
		}
		parts[i] = p
	}
	return Selector{Components: parts}, nil
}

// Resolve checks every component against the format ids of a fresh probe.
// A component carrying an option ordinal ("137-4") also matches its bare
// id. The returned selector uses the matched ids.
func (s Selector) Resolve(ids map[string]struct{}) (Selector, bool) {
	if len(s.Components) == 0 {
		return Selector{}, false
	}

	resolved := make([]string, 0, len(s.Components))
	for _, c := range s.Components {
		if _, ok := ids[c]; ok {
			resolved = append(resolved, c)
			continue
		}
		bare := ordinalSuffixRe.ReplaceAllString(c, "")
		if _, ok := ids[bare]; ok && bare != c {
			resolved = append(resolved, bare)
			continue
		}
		return Selector{}, false
	}
	return Selector{Components: resolved}, true
}

// Selection is what the transcode backend receives: a format expression
// and an optional sort order.
type Selection struct {
	Format  string
	Sort    string
	Generic bool
}

// GenericSelection is the fallback used when no specific selector
// resolves. Video prefers the best stream at or below maxHeight; minHeight
// only adds a preferred first alternative and never blocks.
func GenericSelection(media MediaType, maxHeight, minHeight int) Selection {
	if media == MediaAudio {
		return Selection{Format: "ba/bestaudio", Generic: true}
	}

	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}

	format := "bv*+ba/b"
	if minHeight > 0 && minHeight <= maxHeight {
		format = fmt.Sprintf("bv*[height>=%d]+ba/%s", minHeight, format)
	}

	return Selection{
		Format:  format,
		Sort:    fmt.Sprintf("res:%d,fps,br", maxHeight),
		Generic: true,
	}
}

// ResolveSelection validates a requested selector against the ids of a
// fresh probe and falls back to the generic selection when it is missing,
// malformed or stale.
func ResolveSelection(requested string, ids map[string]struct{}, media MediaType, maxHeight, minHeight int) Selection {
	sel, err := ParseSelector(requested)
	if err != nil {
		return GenericSelection(media, maxHeight, minHeight)
	}
	resolved, ok := sel.Resolve(ids)
	if !ok {
		return GenericSelection(media, maxHeight, minHeight)
	}
	return Selection{Format: resolved.String()}
}
