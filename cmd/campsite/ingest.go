package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/campsite/application/service"
	"github.com/helixml/campsite/infrastructure/persistence"
	"github.com/helixml/campsite/infrastructure/places"
	"github.com/helixml/campsite/internal/config"
)

func ingestCmd() *cobra.Command {
	var (
		envFile string
		query   string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch campgrounds from the Places API and upsert them into Firestore",
		Long: `Run one Places text search and upsert every result into the campgrounds
collection, keyed by place ID.

Environment variables:
  GOOGLE_CLOUD_PROJECT         Firestore project (required)
  MAPS_API_KEY                 Places API key (required)
  CAMPGROUNDS_COLLECTION       Firestore collection (default: campgrounds)
  PLACES_QUERY                 Text search query
  PLACES_ENDPOINT              Text search URL
  PLACES_TIMEOUT               Request timeout in seconds (default: 30)
  PLACES_REQUESTS_PER_SECOND   Outbound request rate (default: 1)
  PLACES_CACHE_DIR             Cache successful responses here (default: off)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.AppConfigOption
			if query != "" {
				opts = append(opts, config.WithPlacesQuery(query))
			}
			return runIngest(cmd.Context(), envFile, opts...)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&query, "query", "", "Override the Places text search query")

	return cmd
}

func runIngest(ctx context.Context, envFile string, opts ...config.AppConfigOption) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := setup(envFile, config.JobIngest, opts...)
	if err != nil {
		return err
	}

	client, err := persistence.NewFirestoreClient(ctx, cfg.ProjectID())
	if err != nil {
		logger.Error("failed to open firestore", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close firestore", slog.Any("error", err))
		}
	}()

	searcher := places.NewClient(cfg.MapsAPIKey(),
		places.WithEndpoint(cfg.PlacesEndpoint()),
		places.WithTimeout(cfg.PlacesTimeout()),
		places.WithRateLimit(cfg.PlacesRatePerSec()),
		places.WithCacheDir(cfg.PlacesCacheDir()),
	)

	ingestion, err := service.NewIngestion(
		searcher,
		persistence.NewCampgroundStore(client, cfg.Collection()),
		cfg.PlacesQuery(),
		logger,
	)
	if err != nil {
		return fmt.Errorf("create ingestion: %w", err)
	}

	result, err := ingestion.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("ingestion complete",
		slog.Int("found", result.Found),
		slog.Int("written", result.Written),
	)
	return nil
}
