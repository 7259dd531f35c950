package utils

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"unicode"
)

func TestSafeTitle(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "Plain words",
			title: "My Holiday Video",
			want:  "My_Holiday_Video",
		},
		{
			name:  "Path separators removed",
			title: `a/b\c:d"e`,
			want:  "abcde",
		},
		{
			name:  "Control characters and tabs",
			title: "line\x00one\ttwo\r\nthree",
			want:  "lineone_two_three",
		},
		{
			name:  "Only punctuation",
			title: `/\:"*?<>|`,
			want:  "video",
		},
		{
			name:  "Empty",
			title: "",
			want:  "video",
		},
		{
			name:  "Unicode letters dropped",
			title: "Café – naïve",
			want:  "Caf_nave",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeTitle(tc.title); got != tc.want {
				t.Errorf("SafeTitle(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestSafeTitle_NeverProducesPathBreakingCharacters(t *testing.T) {
	titles := []string{
		strings.Repeat("../", 100),
		strings.Repeat(`C:\Windows\`, 40),
		strings.Repeat("\"quoted\" ", 50),
		string([]rune{0, 1, 2, 31, 127, '/', 'x'}),
		strings.Repeat("a", 500),
	}

	for _, title := range titles {
		got := SafeTitle(title)
		if len(got) > maxTitleLength {
			t.Errorf("SafeTitle() length = %d, want <= %d", len(got), maxTitleLength)
		}
		if strings.ContainsAny(got, `/\:"`) {
			t.Errorf("SafeTitle() = %q contains a path-breaking character", got)
		}
		for _, r := range got {
			if unicode.IsControl(r) {
				t.Errorf("SafeTitle() = %q contains control character %U", got, r)
			}
		}
	}
}

func TestSanitizeExtension(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"MP4", "mp4"},
		{".webm", "webm"},
		{"m4a;rm", "m4arm"},
		{"", "mp4"},
		{"../", "mp4"},
	}

	for _, tc := range testCases {
		if got := SanitizeExtension(tc.in, "mp4"); got != tc.want {
			t.Errorf("SanitizeExtension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContentTypeForExtension(t *testing.T) {
	testCases := map[string]string{
		"mp4":  "video/mp4",
		"webm": "video/webm",
		"mkv":  "video/x-matroska",
		"m4a":  "audio/mp4",
		"mp3":  "audio/mpeg",
		"wav":  "audio/wav",
		"opus": "audio/ogg",
		"flac": "application/octet-stream",
	}

	for ext, want := range testCases {
		if got := ContentTypeForExtension(ext); got != want {
			t.Errorf("ContentTypeForExtension(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestAppErrorStatus(t *testing.T) {
	if err := NewAuthRequiredError(); err.StatusCode != http.StatusForbidden || err.Message != AuthRequiredMessage {
		t.Errorf("NewAuthRequiredError() = %+v", err)
	}
	if err := NewMissingParameterError("id"); err.StatusCode != http.StatusBadRequest {
		t.Errorf("NewMissingParameterError() status = %d", err.StatusCode)
	}
	if got := NewProbeError().Error(); got != "[PROBE_FAILED] Failed to fetch video formats" {
		t.Errorf("Error() = %q", got)
	}
}

func TestGenerateIDs(t *testing.T) {
	correlationID := GenerateCorrelationID()
	if correlationID == "" {
		t.Error("Expected non-empty correlation ID")
	}

	requestID := GenerateRequestID()
	if !strings.HasPrefix(requestID, "req_") {
		t.Errorf("Expected request ID prefix, got %q", requestID)
	}

	ctx := WithRequestID(WithCorrelationID(context.Background(), correlationID), requestID)
	if GetCorrelationID(ctx) != correlationID || GetRequestID(ctx) != requestID {
		t.Error("Expected IDs to round-trip through the context")
	}
}
