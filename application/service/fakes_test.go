package service

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/helixml/campsite/domain/artifact"
	"github.com/helixml/campsite/domain/campground"
	"github.com/helixml/campsite/infrastructure/places"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeSearcher implements PlaceSearcher.
type fakeSearcher struct {
	places  []places.Place
	err     error
	queries []string
}

func (f *fakeSearcher) SearchText(_ context.Context, query string) ([]places.Place, error) {
	f.queries = append(f.queries, query)
	return f.places, f.err
}

// fakeCampgroundStore is an in-memory campground.Store keyed by place ID.
type fakeCampgroundStore struct {
	mu        sync.Mutex
	docs      map[string]campground.Campground
	upserts   int
	upsertErr error
	allErr    error
}

func newFakeCampgroundStore(initial ...campground.Campground) *fakeCampgroundStore {
	s := &fakeCampgroundStore{docs: map[string]campground.Campground{}}
	for _, c := range initial {
		s.docs[c.PlaceID()] = c
	}
	return s
}

func (s *fakeCampgroundStore) UpsertAll(_ context.Context, cs []campground.Campground) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	for _, c := range cs {
		s.docs[c.PlaceID()] = c
	}
	return nil
}

func (s *fakeCampgroundStore) All(_ context.Context) ([]campground.Campground, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allErr != nil {
		return nil, s.allErr
	}
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]campground.Campground, len(ids))
	for i, id := range ids {
		out[i] = s.docs[id]
	}
	return out, nil
}

// fakeEmbedder maps each text to a vector of dim values derived from its length.
type fakeEmbedder struct {
	dim   int
	err   error
	short bool
	texts []string
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.texts = append(f.texts, texts...)
	if f.err != nil {
		return nil, f.err
	}
	n := len(texts)
	if f.short && n > 0 {
		n--
	}
	out := make([][]float32, n)
	for i := range out {
		vec := make([]float32, f.dim)
		vec[0] = float32(len(texts[i]))
		out[i] = vec
	}
	return out, nil
}

// dimensionedEmbedder also reports its dimension up front.
type dimensionedEmbedder struct {
	fakeEmbedder
}

func (d *dimensionedEmbedder) Dimension() int { return d.dim }

// fakeArtifacts is an in-memory artifact.Store that bumps the generation on
// every upload.
type fakeArtifacts struct {
	objects   map[string]artifact.Object
	uploaded  map[string][]byte
	next      int64
	uploadErr error
	statErr   error
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{
		objects:  map[string]artifact.Object{},
		uploaded: map[string][]byte{},
		next:     1700000000000000,
	}
}

func (f *fakeArtifacts) Upload(_ context.Context, name, localPath string) (artifact.Object, error) {
	if f.uploadErr != nil {
		return artifact.Object{}, f.uploadErr
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return artifact.Object{}, err
	}
	f.next++
	obj := artifact.Object{Name: name, Generation: f.next, Size: int64(len(data))}
	f.objects[name] = obj
	f.uploaded[name] = data
	return obj, nil
}

func (f *fakeArtifacts) Stat(_ context.Context, name string) (artifact.Object, error) {
	if f.statErr != nil {
		return artifact.Object{}, f.statErr
	}
	obj, ok := f.objects[name]
	if !ok {
		return artifact.Object{}, artifact.ErrNotFound
	}
	return obj, nil
}
