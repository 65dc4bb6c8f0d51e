package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/campsite/domain/campground"
	"github.com/helixml/campsite/infrastructure/places"
)

func ptr[T any](v T) *T { return &v }

func samplePlaces() []places.Place {
	return []places.Place{
		{
			ID:               "ChIJ_silver",
			DisplayName:      &places.LocalizedText{Text: "Silver Falls State Park"},
			FormattedAddress: ptr("Sublimity, OR"),
			Location:         &places.LatLng{Latitude: ptr(44.85), Longitude: ptr(-122.65)},
			Rating:           ptr(4.8),
			UserRatingCount:  ptr(int64(12034)),
		},
		{ID: "ChIJ_bare"},
	}
}

func TestNewIngestion_RejectsMissingDependencies(t *testing.T) {
	store := newFakeCampgroundStore()

	_, err := NewIngestion(nil, store, "q", testLogger())
	assert.Error(t, err)
	_, err = NewIngestion(&fakeSearcher{}, nil, "q", testLogger())
	assert.Error(t, err)
	_, err = NewIngestion(&fakeSearcher{}, store, "", testLogger())
	assert.Error(t, err)

	svc, err := NewIngestion(&fakeSearcher{}, store, "q", nil)
	require.NoError(t, err)
	assert.NotNil(t, svc.logger)
}

func TestIngestion_Run(t *testing.T) {
	searcher := &fakeSearcher{places: samplePlaces()}
	store := newFakeCampgroundStore()
	svc, err := NewIngestion(searcher, store, "campgrounds in Oregon", testLogger())
	require.NoError(t, err)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IngestResult{Found: 2, Written: 2}, result)
	assert.Equal(t, []string{"campgrounds in Oregon"}, searcher.queries)
	assert.Equal(t, 1, store.upserts, "one batch per run")

	all, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	bare := all[0]
	assert.Equal(t, "ChIJ_bare", bare.PlaceID())
	assert.Equal(t, campground.NewLocation(0, 0), bare.Location())

	silver := all[1]
	name, _ := silver.Name()
	assert.Equal(t, "Silver Falls State Park", name)
	total, _ := silver.UserRatingsTotal()
	assert.Equal(t, int64(12034), total)
}

func TestIngestion_RunIsIdempotent(t *testing.T) {
	store := newFakeCampgroundStore()
	svc, err := NewIngestion(&fakeSearcher{places: samplePlaces()}, store, "q", testLogger())
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.NoError(t, err)
	first, err := store.All(context.Background())
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.NoError(t, err)
	second, err := store.All(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIngestion_RunZeroResults(t *testing.T) {
	existing := campground.New("kept", campground.WithName("Already here"))
	store := newFakeCampgroundStore(existing)
	svc, err := NewIngestion(&fakeSearcher{places: []places.Place{}}, store, "q", testLogger())
	require.NoError(t, err)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IngestResult{}, result)
	assert.Zero(t, store.upserts, "store must not be touched")
	all, _ := store.All(context.Background())
	assert.Equal(t, []campground.Campground{existing}, all)
}

func TestIngestion_RunAPIError(t *testing.T) {
	apiErr := &places.APIError{StatusCode: http.StatusForbidden, Body: `{"error":"denied"}`}
	store := newFakeCampgroundStore()
	svc, err := NewIngestion(&fakeSearcher{err: apiErr}, store, "q", testLogger())
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.Error(t, err)

	var got *places.APIError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusForbidden, got.StatusCode)
	assert.Zero(t, store.upserts)
}

func TestIngestion_RunTransportError(t *testing.T) {
	netErr := errors.New("connection refused")
	svc, err := NewIngestion(&fakeSearcher{err: netErr}, newFakeCampgroundStore(), "q", testLogger())
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	assert.ErrorIs(t, err, netErr)
}

func TestIngestion_RunInvalidPlace(t *testing.T) {
	store := newFakeCampgroundStore()
	searcher := &fakeSearcher{places: []places.Place{{ID: "ok"}, {DisplayName: &places.LocalizedText{Text: "no id"}}}}
	svc, err := NewIngestion(searcher, store, "q", testLogger())
	require.NoError(t, err)

	result, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, places.ErrMissingPlaceID)
	assert.Equal(t, 2, result.Found)
	assert.Zero(t, store.upserts, "nothing is written when any place is invalid")
}

func TestIngestion_RunStoreError(t *testing.T) {
	store := newFakeCampgroundStore()
	store.upsertErr = campground.ErrTooManyWrites
	svc, err := NewIngestion(&fakeSearcher{places: samplePlaces()}, store, "q", testLogger())
	require.NoError(t, err)

	result, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, campground.ErrTooManyWrites)
	assert.Equal(t, IngestResult{Found: 2}, result)
}
