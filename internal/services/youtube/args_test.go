package youtube

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Ghazanfar1991/youtube-app/internal/config"
)

func TestCookieArgs(t *testing.T) {
	testCases := []struct {
		name       string
		cfg        config.YtDlpConfig
		wantArgs   []string
		wantSource string
	}{
		{
			name: "None",
		},
		{
			name:       "File wins over browser",
			cfg:        config.YtDlpConfig{CookiesFile: "/run/cookies.txt", CookiesFromBrowser: "chrome"},
			wantArgs:   []string{"--cookies", "/run/cookies.txt"},
			wantSource: "file /run/cookies.txt",
		},
		{
			name:       "Browser",
			cfg:        config.YtDlpConfig{CookiesFromBrowser: "firefox"},
			wantArgs:   []string{"--cookies-from-browser", "firefox"},
			wantSource: "browser firefox",
		},
		{
			name:       "Browser with profile",
			cfg:        config.YtDlpConfig{CookiesFromBrowser: "chrome", BrowserProfile: "Profile 2"},
			wantArgs:   []string{"--cookies-from-browser", "chrome:Profile 2"},
			wantSource: "browser chrome:Profile 2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.wantArgs, CookieArgs(tc.cfg)); diff != "" {
				t.Errorf("CookieArgs() mismatch (-want +got):\n%s", diff)
			}
			if got := CookieSource(tc.cfg); got != tc.wantSource {
				t.Errorf("CookieSource() = %q, want %q", got, tc.wantSource)
			}
		})
	}
}

func TestCommonArgs(t *testing.T) {
	cfg := config.YtDlpConfig{
		CookiesFile: "c.txt",
		UserAgent:   "Mozilla/5.0",
		Referer:     "https://www.youtube.com/",
	}

	want := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"--cookies", "c.txt",
		"--no-check-certificates",
		"--no-warnings",
		"--no-playlist",
		"--add-header", "referer: https://www.youtube.com/",
		"--add-header", "user-agent: Mozilla/5.0",
	}
	if diff := cmp.Diff(want, CommonArgs(cfg, "dQw4w9WgXcQ")); diff != "" {
		t.Errorf("CommonArgs() mismatch (-want +got):\n%s", diff)
	}
}
