// Package main is the entry point for the campsite CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/helixml/campsite/internal/config"
	"github.com/helixml/campsite/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campsite",
		Short: "Campground ingestion, indexing and index version service",
		Long: `Campsite fetches Oregon state park campgrounds from the Google Places API,
stores them in Firestore, builds a vector index over them and serves the
current index version over HTTP.

Each subcommand is one independently scheduled job.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(indexCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// setup loads and validates configuration for job and installs its logger.
func setup(envFile string, job config.Job, opts ...config.AppConfigOption) (config.AppConfig, *slog.Logger, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, nil, err
	}
	cfg = cfg.Apply(opts...)

	logger := log.Configure(cfg, job)
	if err := cfg.Validate(job); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		return config.AppConfig{}, nil, err
	}

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "starting "+string(job), attrs...)

	return cfg, logger, nil
}
