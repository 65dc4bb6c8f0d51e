package persistence

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/helixml/campsite/domain/campground"
)

// upsertTxOptions commits the batch once. An aborted commit fails the run.
var upsertTxOptions = []firestore.TransactionOption{firestore.MaxAttempts(1)}

// CampgroundStore implements campground.Store on a Firestore collection.
// Documents are keyed by place ID.
type CampgroundStore struct {
	client     *firestore.Client
	collection string
	mapper     CampgroundMapper
}

// NewCampgroundStore creates a CampgroundStore.
func NewCampgroundStore(client *firestore.Client, collection string) CampgroundStore {
	return CampgroundStore{client: client, collection: collection}
}

// UpsertAll writes every campground in a single transaction.
// Later entries win when a place ID repeats.
func (s CampgroundStore) UpsertAll(ctx context.Context, campgrounds []campground.Campground) error {
	if len(campgrounds) == 0 {
		return nil
	}

	unique := dedupeByPlaceID(campgrounds)
	if len(unique) > campground.MaxBatchWrites {
		return fmt.Errorf("upsert campgrounds: %w: %d > %d", campground.ErrTooManyWrites, len(unique), campground.MaxBatchWrites)
	}

	col := s.client.Collection(s.collection)
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		for _, c := range unique {
			if err := tx.Set(col.Doc(c.PlaceID()), s.mapper.ToModel(c)); err != nil {
				return fmt.Errorf("set %s: %w", c.PlaceID(), err)
			}
		}
		return nil
	}, upsertTxOptions...)
	if err != nil {
		return fmt.Errorf("upsert campgrounds: %w", err)
	}
	return nil
}

// All returns every campground ordered by document ID.
func (s CampgroundStore) All(ctx context.Context) ([]campground.Campground, error) {
	iter := s.client.Collection(s.collection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var result []campground.Campground
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list campgrounds: %w", err)
		}

		var model CampgroundModel
		if err := doc.DataTo(&model); err != nil {
			return nil, fmt.Errorf("decode campground %s: %w", doc.Ref.ID, err)
		}
		result = append(result, s.mapper.ToDomain(doc.Ref.ID, model))
	}
	return result, nil
}

func dedupeByPlaceID(campgrounds []campground.Campground) []campground.Campground {
	position := make(map[string]int, len(campgrounds))
	unique := make([]campground.Campground, 0, len(campgrounds))
	for _, c := range campgrounds {
		if i, ok := position[c.PlaceID()]; ok {
			unique[i] = c
			continue
		}
		position[c.PlaceID()] = len(unique)
		unique = append(unique, c)
	}
	return unique
}
