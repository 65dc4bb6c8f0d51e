// Package campground holds the campground record produced by ingestion and
// consumed by indexing.
package campground

// Location is a latitude/longitude pair in decimal degrees.
type Location struct {
	latitude  float64
	longitude float64
}

// NewLocation creates a Location.
func NewLocation(latitude, longitude float64) Location {
	return Location{latitude: latitude, longitude: longitude}
}

// Latitude returns the latitude.
func (l Location) Latitude() float64 { return l.latitude }

// Longitude returns the longitude.
func (l Location) Longitude() float64 { return l.longitude }

// Campground is a point of interest keyed by the provider's place identifier.
//
// Optional attributes report whether they were present at the source so that
// a missing rating is never confused with a zero rating.
type Campground struct {
	placeID          string
	name             *string
	address          *string
	location         Location
	rating           *float64
	userRatingsTotal *int64
	description      string
}

// Option configures a Campground.
type Option func(*Campground)

// WithName sets the display name.
func WithName(name string) Option {
	return func(c *Campground) { c.name = &name }
}

// WithAddress sets the formatted address.
func WithAddress(address string) Option {
	return func(c *Campground) { c.address = &address }
}

// WithLocation sets the coordinates.
func WithLocation(loc Location) Option {
	return func(c *Campground) { c.location = loc }
}

// WithRating sets the average rating.
func WithRating(rating float64) Option {
	return func(c *Campground) { c.rating = &rating }
}

// WithUserRatingsTotal sets the number of user ratings.
func WithUserRatingsTotal(total int64) Option {
	return func(c *Campground) { c.userRatingsTotal = &total }
}

// WithDescription sets the free-text description.
func WithDescription(description string) Option {
	return func(c *Campground) { c.description = description }
}

// New creates a Campground for the given place identifier.
func New(placeID string, opts ...Option) Campground {
	c := Campground{placeID: placeID}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// PlaceID returns the provider-assigned identifier.
func (c Campground) PlaceID() string { return c.placeID }

// Name returns the display name and whether it is set.
func (c Campground) Name() (string, bool) { return deref(c.name) }

// Address returns the formatted address and whether it is set.
func (c Campground) Address() (string, bool) { return deref(c.address) }

// Location returns the coordinates. Records without a source location sit at (0, 0).
func (c Campground) Location() Location { return c.location }

// Rating returns the average rating and whether it is set.
func (c Campground) Rating() (float64, bool) { return deref(c.rating) }

// UserRatingsTotal returns the rating count and whether it is set.
func (c Campground) UserRatingsTotal() (int64, bool) { return deref(c.userRatingsTotal) }

// Description returns the description, empty when none was stored.
func (c Campground) Description() string { return c.description }

// Text returns the string embedded for this record: "<name>: <description>".
func (c Campground) Text() string {
	name, _ := c.Name()
	return name + ": " + c.description
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
