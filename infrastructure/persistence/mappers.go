package persistence

import (
	"google.golang.org/genproto/googleapis/type/latlng"

	"github.com/helixml/campsite/domain/campground"
)

// CampgroundModel is the Firestore document shape of a campground.
// Absent optional values are stored as null.
type CampgroundModel struct {
	Name             *string        `firestore:"name"`
	Address          *string        `firestore:"address"`
	Location         *latlng.LatLng `firestore:"location"`
	Rating           *float64       `firestore:"rating"`
	UserRatingsTotal *int64         `firestore:"user_ratings_total"`
	PlaceID          string         `firestore:"place_id"`
	Description      string         `firestore:"description,omitempty"`
}

// CampgroundMapper maps between campground.Campground and CampgroundModel.
type CampgroundMapper struct{}

// ToDomain converts a document to a Campground. docID is used when the
// document has no place_id field.
func (m CampgroundMapper) ToDomain(docID string, e CampgroundModel) campground.Campground {
	placeID := e.PlaceID
	if placeID == "" {
		placeID = docID
	}

	var opts []campground.Option
	if e.Name != nil {
		opts = append(opts, campground.WithName(*e.Name))
	}
	if e.Address != nil {
		opts = append(opts, campground.WithAddress(*e.Address))
	}
	if e.Location != nil {
		opts = append(opts, campground.WithLocation(campground.NewLocation(e.Location.GetLatitude(), e.Location.GetLongitude())))
	}
	if e.Rating != nil {
		opts = append(opts, campground.WithRating(*e.Rating))
	}
	if e.UserRatingsTotal != nil {
		opts = append(opts, campground.WithUserRatingsTotal(*e.UserRatingsTotal))
	}
	if e.Description != "" {
		opts = append(opts, campground.WithDescription(e.Description))
	}
	return campground.New(placeID, opts...)
}

// ToModel converts a Campground to its document.
func (m CampgroundMapper) ToModel(c campground.Campground) CampgroundModel {
	model := CampgroundModel{
		PlaceID:     c.PlaceID(),
		Description: c.Description(),
		Location: &latlng.LatLng{
			Latitude:  c.Location().Latitude(),
			Longitude: c.Location().Longitude(),
		},
	}
	if v, ok := c.Name(); ok {
		model.Name = &v
	}
	if v, ok := c.Address(); ok {
		model.Address = &v
	}
	if v, ok := c.Rating(); ok {
		model.Rating = &v
	}
	if v, ok := c.UserRatingsTotal(); ok {
		model.UserRatingsTotal = &v
	}
	return model
}
