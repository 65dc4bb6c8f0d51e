package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/campsite/domain/artifact"
	"github.com/helixml/campsite/domain/campground"
	"github.com/helixml/campsite/domain/search"
)

// IndexResult summarises an indexing run.
type IndexResult struct {
	Documents  int
	Dimension  int
	LocalPath  string
	Object     string
	Generation int64
}

// Indexing builds the flat index over every campground and publishes it.
type Indexing struct {
	store     campground.Store
	embedder  search.Embedder
	artifacts artifact.Store
	localPath string
	object    string
	logger    *slog.Logger
}

// NewIndexing creates an Indexing writing to localPath and uploading to object.
func NewIndexing(
	store campground.Store,
	embedder search.Embedder,
	artifacts artifact.Store,
	localPath string,
	object string,
	logger *slog.Logger,
) (*Indexing, error) {
	if store == nil {
		return nil, fmt.Errorf("NewIndexing: nil store")
	}
	if embedder == nil {
		return nil, fmt.Errorf("NewIndexing: nil embedder")
	}
	if artifacts == nil {
		return nil, fmt.Errorf("NewIndexing: nil artifacts")
	}
	if localPath == "" || object == "" {
		return nil, fmt.Errorf("NewIndexing: empty index path or object name")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexing{
		store:     store,
		embedder:  embedder,
		artifacts: artifacts,
		localPath: localPath,
		object:    object,
		logger:    logger,
	}, nil
}

// Run fetches, embeds, builds, writes and uploads. Row i of the index is the
// i-th fetched campground and carries its place ID.
func (s *Indexing) Run(ctx context.Context) (IndexResult, error) {
	campgrounds, err := s.store.All(ctx)
	if err != nil {
		return IndexResult{}, fmt.Errorf("fetch campgrounds: %w", err)
	}
	s.logger.Info("fetched campgrounds", slog.Int("count", len(campgrounds)))

	texts := make([]string, len(campgrounds))
	for i, c := range campgrounds {
		texts[i] = c.Text()
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return IndexResult{}, fmt.Errorf("embed campgrounds: %w", err)
	}
	if len(vectors) != len(campgrounds) {
		return IndexResult{}, fmt.Errorf("embed campgrounds: got %d vectors for %d documents", len(vectors), len(campgrounds))
	}
	s.logger.Info("generated embeddings", slog.Int("count", len(vectors)))

	dim, err := s.dimension(vectors)
	if err != nil {
		return IndexResult{}, err
	}
	index, err := search.NewFlatIndex(dim)
	if err != nil {
		return IndexResult{}, fmt.Errorf("build index: %w", err)
	}
	for i, vec := range vectors {
		if err := index.Add(campgrounds[i].PlaceID(), vec); err != nil {
			return IndexResult{}, fmt.Errorf("build index: row %d: %w", i, err)
		}
	}
	s.logger.Info("built flat index", slog.Int("vectors", index.Len()), slog.Int("dimension", dim))

	if err := index.WriteFile(s.localPath); err != nil {
		return IndexResult{}, err
	}
	s.logger.Info("wrote index file", slog.String("path", s.localPath))

	obj, err := s.artifacts.Upload(ctx, s.object, s.localPath)
	if err != nil {
		return IndexResult{}, fmt.Errorf("upload index: %w", err)
	}
	s.logger.Info("uploaded index",
		slog.String("object", s.object),
		slog.Int64("generation", obj.Generation),
	)

	return IndexResult{
		Documents:  index.Len(),
		Dimension:  dim,
		LocalPath:  s.localPath,
		Object:     s.object,
		Generation: obj.Generation,
	}, nil
}

func (s *Indexing) dimension(vectors [][]float32) (int, error) {
	if len(vectors) > 0 {
		return len(vectors[0]), nil
	}
	if r, ok := s.embedder.(search.DimensionReporter); ok {
		return r.Dimension(), nil
	}
	return 0, ErrNoDocuments
}
