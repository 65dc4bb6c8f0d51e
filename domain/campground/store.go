package campground

import (
	"context"
	"errors"
)

// MaxBatchWrites is the largest number of records UpsertAll commits atomically.
const MaxBatchWrites = 500

// ErrTooManyWrites indicates a batch larger than MaxBatchWrites.
var ErrTooManyWrites = errors.New("too many writes in a single batch")

// Store defines persistence for campgrounds.
type Store interface {
	// UpsertAll writes every campground in one atomic batch, keyed by place ID.
	// Existing records with the same key are overwritten. Nothing is deleted.
	UpsertAll(ctx context.Context, campgrounds []Campground) error

	// All returns every stored campground in a stable order.
	All(ctx context.Context) ([]Campground, error)
}
