package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgnsrekt/greatloveaudio/internal/api"
	"github.com/dgnsrekt/greatloveaudio/internal/book"
	"github.com/dgnsrekt/greatloveaudio/internal/config"
	"github.com/dgnsrekt/greatloveaudio/internal/events"
	"github.com/dgnsrekt/greatloveaudio/internal/logging"
	"github.com/dgnsrekt/greatloveaudio/internal/storage"
	"github.com/dgnsrekt/greatloveaudio/internal/tts"
)

const version = "0.1.0"

func main() {
	// A missing .env is fine; anything else is not.
	if err := config.LoadDotEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		// Use stderr before logger is initialized
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting greatloveaudio", "version", version)

	logger.Info("configuration loaded",
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"http_port", cfg.HTTPPort,
		"allowed_origins", cfg.AllowedOrigins,
		"max_upload_size", cfg.MaxUploadSize,
		"upload_dir", cfg.UploadDir,
		"audio_dir", cfg.AudioDir,
		"events_enabled", cfg.EventsEnabled(),
	)

	if err := storage.EnsureDirs(cfg.UploadDir, cfg.AudioDir); err != nil {
		logger.Error("failed to prepare directories", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engines := tts.NewRegistry()
	if err := engines.Register(tts.NewStubEngine(logger)); err != nil {
		logger.Error("failed to register speech engine", "error", err)
		os.Exit(1)
	}
	logger.Info("speech engines registered", "engines", engines.List())

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.EventsEnabled() {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			logger.Warn("book events disabled", "error", err)
		} else {
			publisher = natsPublisher
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", "error", err)
		}
	}()

	server := api.New(cfg, logger, api.Deps{
		Parser:  book.NewParser(logger),
		Store:   storage.New(cfg.UploadDir),
		Engines: engines,
		Voices:  tts.DefaultCatalog(),
		Events:  publisher,
	})

	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	<-serverCtx.Done()
	if ctx.Err() != nil {
		logger.Info("received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
}
