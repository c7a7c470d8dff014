package response

import (
	"wonderchain/internal/core/domain/place"
)

type Place struct {
	ID          int64   `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Status      string  `json:"status"`
}

func (p *Place) FromDomainPlace(dp place.Place) {
	p.ID = int64(dp.ID)
	p.Slug = string(dp.Slug)
	p.Name = dp.Name
	p.Summary = optionalString(dp.Summary.Value, dp.Summary.IsPresent)
	p.Description = optionalString(dp.Description.Value, dp.Description.IsPresent)
	p.ImageURL = optionalString(dp.ImageURL.Value, dp.ImageURL.IsPresent)
	p.Latitude = dp.Coordinates.Latitude
	p.Longitude = dp.Coordinates.Longitude
	p.Status = dp.Status.String()
}

// FeatureCollection is a GeoJSON document, points are encoded as [lng, lat].
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   Point             `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type FeatureProperties struct {
	ID          int64   `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

func NewFeatureCollection(places []place.Place) FeatureCollection {
	features := make([]Feature, 0, len(places))
	for _, p := range places {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Point{
				Type:        "Point",
				Coordinates: [2]float64{p.Coordinates.Longitude, p.Coordinates.Latitude},
			},
			Properties: FeatureProperties{
				ID:          int64(p.ID),
				Slug:        string(p.Slug),
				Name:        p.Name,
				Summary:     optionalString(p.Summary.Value, p.Summary.IsPresent),
				Description: optionalString(p.Description.Value, p.Description.IsPresent),
				ImageURL:    optionalString(p.ImageURL.Value, p.ImageURL.IsPresent),
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

func optionalString(value string, isPresent bool) *string {
	if !isPresent {
		return nil
	}
	return &value
}
