package places

import (
	"errors"

	"github.com/helixml/campsite/domain/campground"
)

// ErrMissingPlaceID indicates a result without an id.
var ErrMissingPlaceID = errors.New("place has no id")

// FieldMask lists the fields requested from text search.
const FieldMask = "places.id,places.displayName,places.formattedAddress,places.location,places.rating,places.userRatingCount"

// Place is one text search result, limited to FieldMask.
type Place struct {
	ID               string         `json:"id"`
	DisplayName      *LocalizedText `json:"displayName,omitempty"`
	FormattedAddress *string        `json:"formattedAddress,omitempty"`
	Location         *LatLng        `json:"location,omitempty"`
	Rating           *float64       `json:"rating,omitempty"`
	UserRatingCount  *int64         `json:"userRatingCount,omitempty"`
}

// LocalizedText is a display string with its language.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// LatLng is a coordinate pair. Either half may be absent in a response.
type LatLng struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type searchTextRequest struct {
	TextQuery string `json:"textQuery"`
}

type searchTextResponse struct {
	Places []Place `json:"places"`
}

// ToCampground maps a result onto the campground record.
// Missing coordinates become 0.
func (p Place) ToCampground() (campground.Campground, error) {
	if p.ID == "" {
		return campground.Campground{}, ErrMissingPlaceID
	}

	var lat, lng float64
	if p.Location != nil {
		if p.Location.Latitude != nil {
			lat = *p.Location.Latitude
		}
		if p.Location.Longitude != nil {
			lng = *p.Location.Longitude
		}
	}

	opts := []campground.Option{campground.WithLocation(campground.NewLocation(lat, lng))}
	if p.DisplayName != nil {
		opts = append(opts, campground.WithName(p.DisplayName.Text))
	}
	if p.FormattedAddress != nil {
		opts = append(opts, campground.WithAddress(*p.FormattedAddress))
	}
	if p.Rating != nil {
		opts = append(opts, campground.WithRating(*p.Rating))
	}
	if p.UserRatingCount != nil {
		opts = append(opts, campground.WithUserRatingsTotal(*p.UserRatingCount))
	}

	return campground.New(p.ID, opts...), nil
}
