package youtube

import (
	"github.com/Ghazanfar1991/youtube-app/internal/config"
)

// CookieArgs selects the yt-dlp cookie source. A cookies file wins over a
// browser profile.
func CookieArgs(cfg config.YtDlpConfig) []string {
	if cfg.CookiesFile != "" {
		return []string{"--cookies", cfg.CookiesFile}
	}
	if cfg.CookiesFromBrowser != "" {
		source := cfg.CookiesFromBrowser
		if cfg.BrowserProfile != "" {
			source += ":" + cfg.BrowserProfile
		}
		return []string{"--cookies-from-browser", source}
	}
	return nil
}

// CookieSource describes the configured cookie source for startup logs.
func CookieSource(cfg config.YtDlpConfig) string {
	args := CookieArgs(cfg)
	if len(args) == 0 {
		return ""
	}
	if args[0] == "--cookies" {
		return "file " + args[1]
	}
	return "browser " + args[1]
}

// CommonArgs are shared by every yt-dlp invocation for a video.
func CommonArgs(cfg config.YtDlpConfig, videoID string) []string {
	args := []string{WatchURL(videoID)}
	args = append(args, CookieArgs(cfg)...)
	args = append(args,
		"--no-check-certificates",
		"--no-warnings",
		"--no-playlist",
	)
	if cfg.Referer != "" {
		args = append(args, "--add-header", "referer: "+cfg.Referer)
	}
	if cfg.UserAgent != "" {
		args = append(args, "--add-header", "user-agent: "+cfg.UserAgent)
	}
	return args
}
