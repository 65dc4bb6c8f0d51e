package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/campsite/application/service"
	"github.com/helixml/campsite/infrastructure/objectstore"
	"github.com/helixml/campsite/infrastructure/persistence"
	"github.com/helixml/campsite/infrastructure/provider"
	"github.com/helixml/campsite/internal/config"
)

func indexCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the campground vector index and upload it to Cloud Storage",
		Long: `Read every campground from Firestore, embed "name: description" with
all-MiniLM-L6-v2, write a flat L2 index and upload it to the bucket.

Environment variables:
  GCS_BUCKET                   Destination bucket (required)
  GOOGLE_CLOUD_PROJECT         Firestore project (default: detected)
  CAMPGROUNDS_COLLECTION       Firestore collection (default: campgrounds)
  INDEX_FILE                   Local index path (default: campgrounds.index)
  INDEX_OBJECT                 Object name (default: campgrounds.index)
  EMBEDDING_MODEL_DIR          Model directory (default: models)
  EMBEDDING_BATCH_SIZE         Texts per model call (default: 32)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runIndex(ctx context.Context, envFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := setup(envFile, config.JobIndex)
	if err != nil {
		return err
	}

	fsClient, err := persistence.NewFirestoreClient(ctx, cfg.ProjectID())
	if err != nil {
		logger.Error("failed to open firestore", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := fsClient.Close(); err != nil {
			logger.Warn("failed to close firestore", slog.Any("error", err))
		}
	}()

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

	embedder := provider.NewHugotEmbedding(cfg.ModelDir(),
		provider.WithBatchSize(cfg.EmbeddingBatchSize()),
	)
	if !embedder.Available() {
		err := fmt.Errorf("no embedding model in %s (run: go run ./tools/download-model)", cfg.ModelDir())
		logger.Error("embedding model missing", slog.Any("error", err))
		return err
	}
	defer func() { _ = embedder.Close() }()

	indexing, err := service.NewIndexing(
		persistence.NewCampgroundStore(fsClient, cfg.Collection()),
		embedder,
		objectstore.NewGCS(gcsClient, cfg.Bucket()),
		cfg.IndexFile(),
		cfg.IndexObject(),
		logger,
	)
	if err != nil {
		return fmt.Errorf("create indexing: %w", err)
	}

	result, err := indexing.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("indexing complete",
		slog.Int("documents", result.Documents),
		slog.Int("dimension", result.Dimension),
		slog.String("object", result.Object),
		slog.Int64("generation", result.Generation),
	)
	return nil
}
