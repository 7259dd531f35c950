package app

import (
	"context"
	"fmt"

	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/database"
	"github.com/Ghazanfar1991/youtube-app/internal/exec"
	"github.com/Ghazanfar1991/youtube-app/internal/services/catalog"
	"github.com/Ghazanfar1991/youtube-app/internal/services/downloader"
	"github.com/Ghazanfar1991/youtube-app/internal/services/storage"
	"github.com/Ghazanfar1991/youtube-app/internal/services/youtube"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// App wires the services shared by the HTTP server and the CLI. DB,
// Storage and Archiver are nil when their backends are not configured or
// not reachable.
type App struct {
	Config      *config.Config
	YtdlpRunner *exec.CommandRunner
	Prober      youtube.Prober
	Catalog     *catalog.Service
	Downloader  *downloader.Service
	DB          *database.MongoDB
	Storage     storage.StorageInterface
	Archiver    *downloader.Archiver
}

// Options selects the optional backends to connect.
type Options struct {
	ListingCache bool
	Archive      bool
}

func New(cfg *config.Config, opts Options) (*App, error) {
	ctx := context.Background()

	a := &App{
		Config:      cfg,
		YtdlpRunner: exec.NewCommandRunner(cfg.YtDlp.BinaryPath),
	}

	prober, err := newProber(cfg, a.YtdlpRunner)
	if err != nil {
		return nil, err
	}
	a.Prober = prober

	var cache catalog.ListingCache
	if opts.ListingCache && cfg.MongoDB.CacheEnabled() {
		db, err := database.NewMongoDB(&cfg.MongoDB, cfg.Probe.CacheTTL)
		if err != nil {
			utils.LogError(ctx, "MongoDB unavailable, listing cache disabled", err)
		} else {
			a.DB = db
			cache = db
		}
	}
	a.Catalog = catalog.NewService(a.Prober, cache)

	if opts.Archive && cfg.Download.ArchiveEnabled && cfg.S3.Enabled() {
		s3Storage, err := storage.NewStorage(&cfg.S3)
		if err != nil {
			utils.LogError(ctx, "S3 unavailable, download archive disabled", err)
		} else {
			a.Storage = s3Storage
			a.Archiver = downloader.NewArchiver(s3Storage)
		}
	}

	a.Downloader = downloader.NewService(a.YtdlpRunner, a.Prober, cfg.YtDlp, cfg.Download)

	fields := utils.Fields{
		"probe_backend": cfg.Probe.Backend,
		"listing_cache": a.DB != nil,
		"archive":       a.Archiver != nil,
	}
	if source := youtube.CookieSource(cfg.YtDlp); source != "" {
		fields["cookies"] = source
	}
	utils.LogInfo(ctx, "Services initialized", fields)

	return a, nil
}

func newProber(cfg *config.Config, runner exec.Runner) (youtube.Prober, error) {
	switch cfg.Probe.Backend {
	case config.ProbeBackendYtDlp:
		return youtube.NewYtdlpClient(runner, cfg.YtDlp, cfg.Probe.Timeout), nil
	case config.ProbeBackendInnertube:
		return youtube.NewInnertubeClient(cfg.Probe.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown probe backend %q", cfg.Probe.Backend)
	}
}

// Close disconnects from MongoDB when connected.
func (a *App) Close(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close(ctx)
}
