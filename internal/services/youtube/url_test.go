package youtube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"Bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Bare id with spaces", "  dQw4w9WgXcQ\n", "dQw4w9WgXcQ"},
		{"Watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s", "dQw4w9WgXcQ"},
		{"Short link", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"Mobile shorts", "https://m.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Live", "https://youtube.com/live/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ"},
		{"Music subdomain", "https://music.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"No scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractVideoID(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractVideoID_Malformed(t *testing.T) {
	for _, input := range []string{"", "   ", "hello", "https://example.com/short"} {
		_, err := ExtractVideoID(input)
		assert.True(t, errors.Is(err, ErrMalformedReference), "input %q: got %v", input, err)
	}
}

func TestThumbnails(t *testing.T) {
	thumbs := Thumbnails("dQw4w9WgXcQ")
	require.Len(t, thumbs, 5)
	assert.Equal(t, "maxresdefault", thumbs[0].Name)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", thumbs[0].URL)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/default.jpg", thumbs[4].URL)
}

func TestRequiresLogin(t *testing.T) {
	assert.True(t, RequiresLogin("ERROR: [youtube] abc: Sign in to confirm you're not a bot. Use --cookies"))
	assert.True(t, RequiresLogin("sign in to confirm you’re not a bot"))
	assert.False(t, RequiresLogin("ERROR: Requested format is not available"))
}
