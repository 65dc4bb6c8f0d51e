package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/helixml/campsite/application/service"
	"github.com/helixml/campsite/infrastructure/api"
	"github.com/helixml/campsite/infrastructure/objectstore"
	"github.com/helixml/campsite/internal/config"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the current index version over HTTP",
		Long: `Start the HTTP server. GET /version returns the Cloud Storage generation
of the index object, read fresh on every request.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  GCS_BUCKET                   Bucket holding the index (required)
  INDEX_OBJECT                 Object name (default: campgrounds.index)
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, envFile, host string, port int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := setup(envFile, config.JobServe, serveOverrides(host, port)...)
	if err != nil {
		return err
	}

	gcsClient, err := objectstore.NewClient(ctx)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logger.Warn("failed to close storage", slog.Any("error", err))
		}
	}()

	versions, err := service.NewVersion(objectstore.NewGCS(gcsClient, cfg.Bucket()), cfg.IndexObject())
	if err != nil {
		return fmt.Errorf("create version service: %w", err)
	}

	server := api.NewAPIServer(cfg.Addr(), versions, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// serveOverrides turns command line flags into config options. Zero values
// leave the environment setting in place.
func serveOverrides(host string, port int) []config.AppConfigOption {
	var opts []config.AppConfigOption
	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	return opts
}
