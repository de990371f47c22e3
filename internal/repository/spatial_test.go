package repository

import (
	"context"
	"testing"

	"github.com/jcao219/new-ro-transit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocations() []models.Location {
	return []models.Location{
		{Name: "New Rochelle Station", Category: models.CategoryLandmark, Coordinates: &models.Coordinates{Lng: -73.782, Lat: 40.907}},
		{Name: "Grand Central Terminal", Category: models.CategoryLandmark, Coordinates: &models.Coordinates{Lng: -73.9772, Lat: 40.7527}},
		{Name: "Hudson Park", Category: models.CategoryLandmark, Coordinates: &models.Coordinates{Lng: -73.7745, Lat: 40.9015}},
		{Name: "Thomas Paine Cottage", Category: models.CategoryLandmark},
	}
}

func TestSpatialIndex_FindNearestLocations(t *testing.T) {
	index := NewSpatialIndex(testLocations())
	ctx := context.Background()

	assert.Equal(t, 3, index.Size())

	tests := []struct {
		name     string
		lat, lon float64
		limit    int
		expected []string
	}{
		{
			name:     "nearest to the station",
			lat:      40.9071,
			lon:      -73.7821,
			limit:    1,
			expected: []string{"New Rochelle Station"},
		},
		{
			name:     "ordered by distance",
			lat:      40.95,
			lon:      -73.80,
			limit:    3,
			expected: []string{"New Rochelle Station", "Hudson Park", "Grand Central Terminal"},
		},
		{
			name:     "limit larger than index",
			lat:      40.9,
			lon:      -73.77,
			limit:    10,
			expected: []string{"Hudson Park", "New Rochelle Station", "Grand Central Terminal"},
		},
		{
			name:     "zero limit",
			lat:      40.9,
			lon:      -73.77,
			limit:    0,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nearby, err := index.FindNearestLocations(ctx, tt.lat, tt.lon, tt.limit)
			require.NoError(t, err)

			names := make([]string, 0, len(nearby))
			for i, n := range nearby {
				names = append(names, n.Name)
				if i > 0 {
					assert.GreaterOrEqual(t, n.DistanceKm, nearby[i-1].DistanceKm)
				}
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestSpatialIndex_Empty(t *testing.T) {
	index := NewSpatialIndex(nil)

	nearby, err := index.FindNearestLocations(context.Background(), 40.9, -73.78, 5)
	require.NoError(t, err)
	assert.Empty(t, nearby)
}

func TestHaversine(t *testing.T) {
	// New Rochelle Station to Grand Central is roughly 24 km.
	d := haversine(40.907, -73.782, 40.7527, -73.9772)
	assert.InDelta(t, 23.6, d, 1.5)
}
