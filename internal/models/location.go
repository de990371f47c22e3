package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Category classifies a location shown on the map and in list views.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryLandmark   Category = "landmark"
)

// Valid reports whether c is one of the known location categories.
func (c Category) Valid() bool {
	return c == CategoryRestaurant || c == CategoryLandmark
}

// Coordinates is a geographic point in longitude/latitude order, the order
// used by the mapping library. It is encoded as a two element JSON array.
type Coordinates struct {
	Lng float64
	Lat float64
}

// Validate checks that the point lies within WGS84 bounds. NaN and
// infinities are rejected.
func (c Coordinates) Validate() error {
	if !ValidLatitude(c.Lat) {
		return fmt.Errorf("invalid latitude: %f", c.Lat)
	}
	if !ValidLongitude(c.Lng) {
		return fmt.Errorf("invalid longitude: %f", c.Lng)
	}
	return nil
}

// ValidLatitude reports whether lat is a finite value in [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lng is a finite value in [-180, 180].
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lng, c.Lat})
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinates: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates: expected [lng, lat], got %d values", len(pair))
	}
	c.Lng, c.Lat = pair[0], pair[1]
	return c.Validate()
}

// Location is a named place that can be listed and, when it has coordinates,
// placed on the map.
type Location struct {
	Name        string       `json:"name"`
	Coordinates *Coordinates `json:"coords,omitempty"`
	Category    Category     `json:"type"`
	Description string       `json:"description,omitempty"`
}

// Located reports whether the location can be placed on a map.
func (l Location) Located() bool {
	return l.Coordinates != nil
}

// CategoryFilter restricts a location list to one category, or none.
type CategoryFilter string

const FilterAll CategoryFilter = "all"

// ParseCategoryFilter accepts "all", a category name, or the empty string
// (treated as "all").
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	switch s {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(CategoryRestaurant), string(CategoryLandmark):
		return CategoryFilter(s), nil
	}
	return FilterAll, fmt.Errorf("unknown category %q", s)
}

// Matches reports whether a location of category c passes the filter.
func (f CategoryFilter) Matches(c Category) bool {
	return f == FilterAll || f == "" || Category(f) == c
}
