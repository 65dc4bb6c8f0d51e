// Package service implements the campsite jobs: ingestion, indexing and
// index version lookup.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/campsite/domain/campground"
	"github.com/helixml/campsite/infrastructure/places"
)

// PlaceSearcher runs a Places text search.
type PlaceSearcher interface {
	SearchText(ctx context.Context, query string) ([]places.Place, error)
}

// IngestResult summarises an ingestion run.
type IngestResult struct {
	Found   int
	Written int
}

// Ingestion fetches campgrounds from Places and upserts them into the store.
type Ingestion struct {
	searcher PlaceSearcher
	store    campground.Store
	query    string
	logger   *slog.Logger
}

// NewIngestion creates an Ingestion for query.
func NewIngestion(searcher PlaceSearcher, store campground.Store, query string, logger *slog.Logger) (*Ingestion, error) {
	if searcher == nil {
		return nil, fmt.Errorf("NewIngestion: nil searcher")
	}
	if store == nil {
		return nil, fmt.Errorf("NewIngestion: nil store")
	}
	if query == "" {
		return nil, fmt.Errorf("NewIngestion: empty query")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestion{searcher: searcher, store: store, query: query, logger: logger}, nil
}

// Run performs one search and one batch upsert. Zero results leave the store
// untouched and succeed. Every failure is logged and returned.
func (s *Ingestion) Run(ctx context.Context) (IngestResult, error) {
	s.logger.Info("searching places", slog.String("query", s.query))

	results, err := s.searcher.SearchText(ctx, s.query)
	if err != nil {
		var apiErr *places.APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("places request failed",
				slog.Int("status", apiErr.StatusCode),
				slog.String("body", apiErr.Body),
			)
		} else {
			s.logger.Error("places request failed", slog.String("error", err.Error()))
		}
		return IngestResult{}, fmt.Errorf("search places: %w", err)
	}

	if len(results) == 0 {
		s.logger.Info("query returned zero results, nothing to ingest")
		return IngestResult{}, nil
	}
	s.logger.Info("found campgrounds", slog.Int("count", len(results)))

	campgrounds := make([]campground.Campground, 0, len(results))
	for i, p := range results {
		c, err := p.ToCampground()
		if err != nil {
			s.logger.Error("invalid place in response", slog.Int("position", i), slog.String("error", err.Error()))
			return IngestResult{Found: len(results)}, fmt.Errorf("map place %d: %w", i, err)
		}
		campgrounds = append(campgrounds, c)
	}

	if err := s.store.UpsertAll(ctx, campgrounds); err != nil {
		s.logger.Error("write campgrounds failed", slog.String("error", err.Error()))
		return IngestResult{Found: len(results)}, fmt.Errorf("write campgrounds: %w", err)
	}

	s.logger.Info("wrote campgrounds", slog.Int("count", len(campgrounds)))
	return IngestResult{Found: len(results), Written: len(campgrounds)}, nil
}
