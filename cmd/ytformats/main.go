package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/Ghazanfar1991/youtube-app/internal/app"
	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/models"
	"github.com/Ghazanfar1991/youtube-app/internal/services/downloader"
	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/services/youtube"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

type CLI struct {
	LogLevel string `help:"Log level." default:"warn" short:"l"`

	List     ListCmd     `cmd:"" help:"List the downloadable streams of a video."`
	Download DownloadCmd `cmd:"" help:"Download a video or its audio."`
}

type ListCmd struct {
	Reference string `arg:"" help:"YouTube URL or video ID."`
	JSON      bool   `help:"Print the listing as JSON." name:"json"`
}

func (c *ListCmd) Run(ctx context.Context, a *app.App) error {
	videoID, err := youtube.ExtractVideoID(c.Reference)
	if err != nil {
		return err
	}

	listing, err := a.Catalog.List(ctx, videoID)
	if err != nil {
		return fmt.Errorf("listing formats: %w", err)
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}
	return printListing(os.Stdout, listing)
}

type DownloadCmd struct {
	Reference string `arg:"" help:"YouTube URL or video ID."`
	Format    string `help:"Format selector from the listing." short:"f"`
	Type      string `help:"Media type." enum:"video,audio" default:"video" short:"t"`
	Ext       string `help:"Output extension."`
	Title     string `help:"File name without extension."`
	Output    string `help:"Directory to write the file to." default:"." short:"o" type:"existingdir"`
}

func (c *DownloadCmd) Run(ctx context.Context, a *app.App) error {
	videoID, err := youtube.ExtractVideoID(c.Reference)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Downloading %s...\n", youtube.WatchURL(videoID))
	artifact, err := a.Downloader.Download(ctx, downloader.Request{
		VideoID: videoID,
		Format:  c.Format,
		Media:   formats.MediaType(c.Type),
		Ext:     c.Ext,
		Title:   c.Title,
	})
	if err != nil {
		return err
	}
	defer artifact.Close()

	target := filepath.Join(c.Output, artifact.FileName)
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if _, err := io.Copy(out, artifact); err != nil {
		out.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	last := artifact.Attempts[len(artifact.Attempts)-1]
	fmt.Printf("%s (%s, %s)\n", target, formats.FormatBytes(artifact.Size), last.Strategy)
	return nil
}

func printListing(w io.Writer, listing *models.FormatListResponse) error {
	fmt.Fprintf(w, "%s\n%s, %ds\n\n", listing.Title, listing.Channel, listing.DurationSeconds)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tLABEL\tSIZE\tEXT\tFORMAT")
	for _, o := range listing.VideoStreams {
		fmt.Fprintf(tw, "video\t%s\t%s\t%s\t%s\n", o.Label, o.Size, o.Extension, o.DownloadFormat)
	}
	for _, o := range listing.AudioStreams {
		fmt.Fprintf(tw, "audio\t%s\t%s\t%s\t%s\n", o.Label, o.Size, o.Extension, o.DownloadFormat)
	}
	return tw.Flush()
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ytformats"),
		kong.Description("List and download YouTube streams with yt-dlp."),
		kong.UsageOnError(),
	)

	utils.UseTextFormat()
	utils.SetLogLevel(cli.LogLevel)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)

	services, err := app.New(cfg, app.Options{ListingCache: strings.HasPrefix(kctx.Command(), "list")})
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer services.Close(context.Background())

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(services))
}
