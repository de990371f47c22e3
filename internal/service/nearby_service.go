package service

import (
	"context"
	"fmt"

	"github.com/jcao219/new-ro-transit/internal/models"
	"github.com/jcao219/new-ro-transit/internal/repository"
)

const (
	DefaultNearbyLimit = 5
	MaxNearbyLimit     = 25
)

// NearbyService finds the mapped locations closest to a point
type NearbyService struct {
	repo NearbyRepository
}

// NearbyRepository interface for dependency injection
type NearbyRepository interface {
	FindNearestLocations(ctx context.Context, lat, lon float64, limit int) ([]repository.NearbyLocation, error)
}

// NewNearbyService creates a new nearby service
func NewNearbyService(repo NearbyRepository) *NearbyService {
	return &NearbyService{repo: repo}
}

// Nearby validates the point and returns up to limit locations, nearest
// first. A non-positive limit selects the default; larger limits are capped.
func (s *NearbyService) Nearby(ctx context.Context, lat, lon float64, limit int) ([]repository.NearbyLocation, error) {
	if !models.ValidLatitude(lat) {
		return nil, fmt.Errorf("service: invalid latitude: %f", lat)
	}
	if !models.ValidLongitude(lon) {
		return nil, fmt.Errorf("service: invalid longitude: %f", lon)
	}
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}
	if limit > MaxNearbyLimit {
		limit = MaxNearbyLimit
	}

	locations, err := s.repo.FindNearestLocations(ctx, lat, lon, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearby locations: %w", err)
	}

	return locations, nil
}
