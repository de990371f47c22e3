package service

import (
	"context"
	"fmt"

	"github.com/jcao219/new-ro-transit/internal/models"
)

// LocationService lists the restaurants and landmarks shown on the map
type LocationService struct {
	source LocationSource
}

// LocationSource interface for dependency injection
type LocationSource interface {
	LocationsByCategory(category models.Category) []models.Location
}

// NewLocationService creates a new location service
func NewLocationService(source LocationSource) *LocationService {
	return &LocationService{source: source}
}

// Locations returns the locations in the given category ("", "all",
// "restaurant" or "landmark")
func (s *LocationService) Locations(ctx context.Context, category string) ([]models.Location, error) {
	filter, err := models.ParseCategoryFilter(category)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c models.Category
	if filter != models.FilterAll {
		c = models.Category(filter)
	}

	locations := s.source.LocationsByCategory(c)
	if locations == nil {
		locations = []models.Location{}
	}
	return locations, nil
}
