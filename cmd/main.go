// Package main provides the entry point for the YouTube stream catalog service.
// @title YouTube Stream Catalog API
// @version 1.0
// @description Lists the downloadable streams of YouTube videos and downloads them through yt-dlp.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Ghazanfar1991/youtube-app/docs" // Import for swagger docs
	"github.com/Ghazanfar1991/youtube-app/internal/api/handlers"
	"github.com/Ghazanfar1991/youtube-app/internal/api/router"
	"github.com/Ghazanfar1991/youtube-app/internal/app"
	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	utils.SetLogLevel(cfg.LogLevel)

	logger := utils.GetLogger()
	logger.Info("Starting YouTube stream catalog service")

	services, err := app.New(cfg, app.Options{ListingCache: true, Archive: true})
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}
	if err := services.YtdlpRunner.Available(); err != nil {
		logger.Warnf("yt-dlp is not available, downloads will fail: %v", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(services.YtdlpRunner)
	if services.DB != nil {
		healthHandler.WithService("mongodb", services.DB)
	}
	if services.Storage != nil {
		healthHandler.WithService("s3", services.Storage)
	}

	// The download handler takes an interface; a nil *Archiver must stay nil.
	var archiver handlers.Archiver
	if services.Archiver != nil {
		archiver = services.Archiver
	}

	r := router.NewRouter(
		cfg,
		handlers.NewStreamsHandler(services.Catalog),
		handlers.NewDownloadHandler(services.Downloader, archiver),
		handlers.NewThumbnailHandler(),
		healthHandler,
	)

	server := &http.Server{
		Addr:              r.Addr(),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 20 * time.Second,
	}

	// Start server
	go func() {
		logger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shut down: %v", err)
	}

	if err := services.Close(ctx); err != nil {
		logger.Errorf("Failed to close database connection: %v", err)
	}

	logger.Info("Server shutdown complete")
}
