package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	API      APIConfig
	YtDlp    YtDlpConfig
	Probe    ProbeConfig
	Download DownloadConfig
	MongoDB  MongoDBConfig
	S3       S3Config
	CORS     CORSConfig
	LogLevel string
}

type ServerConfig struct {
	Port string
	Host string
}

type APIConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// YtDlpConfig describes how the yt-dlp binary is invoked.
type YtDlpConfig struct {
	BinaryPath         string
	FFmpegPath         string
	CookiesFile        string
	CookiesFromBrowser string
	BrowserProfile     string
	UserAgent          string
	Referer            string
}

// ProbeConfig controls format listing.
type ProbeConfig struct {
	Backend  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type DownloadConfig struct {
	TempDir                string
	AttemptTimeout         time.Duration
	MaxConcurrentDownloads int
	ConcurrentFragments    int
	MaxHeight              int
	MinHeight              int
	ArchiveEnabled         bool
}

// MongoDBConfig is optional; an empty URI disables the listing cache.
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// S3Config is optional; an empty bucket disables the download archive.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	EndpointURL     string
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Profile          string
}

const (
	ProbeBackendYtDlp     = "ytdlp"
	ProbeBackendInnertube = "innertube"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")

	// API configuration
	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 60)
	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.API.RateLimitWindow = rateLimitWindow

	// yt-dlp configuration
	cfg.YtDlp.BinaryPath = getEnv("YTDLP_PATH", "yt-dlp")
	cfg.YtDlp.FFmpegPath = getEnv("FFMPEG_PATH", "")
	cfg.YtDlp.CookiesFile = getEnv("YT_DLP_COOKIES_FILE", getEnv("YTDLP_COOKIES_FILE", ""))
	cfg.YtDlp.CookiesFromBrowser = getEnv("YT_DLP_COOKIES_FROM_BROWSER", "")
	cfg.YtDlp.BrowserProfile = getEnv("YT_DLP_BROWSER_PROFILE", "")
	cfg.YtDlp.UserAgent = getEnv("YTDLP_USER_AGENT", "Mozilla/5.0")
	cfg.YtDlp.Referer = getEnv("YTDLP_REFERER", "https://www.youtube.com/")

	// Probe configuration
	cfg.Probe.Backend = strings.ToLower(getEnv("PROBE_BACKEND", ProbeBackendYtDlp))
	if cfg.Probe.Backend != ProbeBackendYtDlp && cfg.Probe.Backend != ProbeBackendInnertube {
		return nil, fmt.Errorf("invalid PROBE_BACKEND: %q", cfg.Probe.Backend)
	}
	probeTimeout, err := time.ParseDuration(getEnv("PROBE_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_TIMEOUT: %w", err)
	}
	cfg.Probe.Timeout = probeTimeout
	cacheTTL, err := time.ParseDuration(getEnv("PROBE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_CACHE_TTL: %w", err)
	}
	cfg.Probe.CacheTTL = cacheTTL

	// Download configuration
	cfg.Download.TempDir = getEnv("DOWNLOAD_TEMP_DIR", os.TempDir())
	attemptTimeout, err := time.ParseDuration(getEnv("DOWNLOAD_ATTEMPT_TIMEOUT", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOWNLOAD_ATTEMPT_TIMEOUT: %w", err)
	}
	cfg.Download.AttemptTimeout = attemptTimeout
	cfg.Download.MaxConcurrentDownloads = getEnvInt("MAX_CONCURRENT_DOWNLOADS", 4)
	cfg.Download.ConcurrentFragments = getEnvInt("DOWNLOAD_CONCURRENT_FRAGMENTS", 8)
	cfg.Download.MaxHeight = getEnvInt("DOWNLOAD_MAX_HEIGHT", 1080)
	cfg.Download.MinHeight = getEnvInt("DOWNLOAD_MIN_HEIGHT", 0)
	cfg.Download.ArchiveEnabled = getEnvBool("DOWNLOAD_ARCHIVE_ENABLED", true)

	// MongoDB configuration
	cfg.MongoDB.URI = getEnv("MONGODB_URI", "")
	cfg.MongoDB.Database = getEnv("MONGODB_DATABASE", "youtube_app")
	mongoTimeout, err := time.ParseDuration(getEnv("MONGODB_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGODB_TIMEOUT: %w", err)
	}
	cfg.MongoDB.Timeout = mongoTimeout

	// S3 configuration
	cfg.S3.Region = getEnv("AWS_REGION", "us-east-1")
	cfg.S3.BucketName = getEnv("S3_BUCKET_NAME", "")
	cfg.S3.EndpointURL = getEnv("AWS_ENDPOINT_URL", "") // Optional for LocalStack
	cfg.S3.AccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.S3.SecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")

	// CORS configuration
	cfg.CORS = loadCORSConfig()

	return cfg, nil
}

// CacheEnabled reports whether a MongoDB listing cache is configured.
func (c *MongoDBConfig) CacheEnabled() bool {
	return c.URI != ""
}

// Enabled reports whether an S3 bucket is configured.
func (c *S3Config) Enabled() bool {
	return c.BucketName != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(strings.TrimSpace(value), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// loadCORSConfig loads CORS configuration based on profile or custom settings
func loadCORSConfig() CORSConfig {
	switch getEnv("CORS_PROFILE", "custom") {
	case "development":
		return CORSConfig{
			Enabled: getEnvBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
			}),
			AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "HEAD", "OPTIONS"}),
			AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Range", "X-Correlation-ID"}),
			ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{"Content-Disposition", "Content-Length", "X-Request-ID"}),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvInt("CORS_MAX_AGE", 86400),
			Profile:          "development",
		}
	case "production":
		return CORSConfig{
			Enabled:          getEnvBool("CORS_ENABLED", true),
			AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{}),
			AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "HEAD", "OPTIONS"}),
			AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Range"}),
			ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{"Content-Disposition", "Content-Length"}),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
			Profile:          "production",
		}
	default:
		return CORSConfig{
			Enabled:          getEnvBool("CORS_ENABLED", true),
			AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "HEAD", "OPTIONS"}),
			AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Range"}),
			ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{"Content-Disposition"}),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
			Profile:          "custom",
		}
	}
}
