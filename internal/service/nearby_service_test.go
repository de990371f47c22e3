package service

import (
	"context"
	"math"
	"testing"

	"github.com/jcao219/new-ro-transit/internal/models"
	"github.com/jcao219/new-ro-transit/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNearbyRepository is a mock implementation of the NearbyRepository interface
type MockNearbyRepository struct {
	mock.Mock
}

func (m *MockNearbyRepository) FindNearestLocations(ctx context.Context, lat, lon float64, limit int) ([]repository.NearbyLocation, error) {
	args := m.Called(ctx, lat, lon, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.NearbyLocation), args.Error(1)
}

func TestNearbyService_Nearby(t *testing.T) {
	station := repository.NearbyLocation{
		Location: models.Location{
			Name:        "New Rochelle Station",
			Category:    models.CategoryLandmark,
			Coordinates: &models.Coordinates{Lng: -73.782, Lat: 40.907},
		},
		DistanceKm: 0.2,
	}

	tests := []struct {
		name          string
		lat           float64
		lon           float64
		limit         int
		expectedLimit int
		mockResult    []repository.NearbyLocation
		mockError     error
		expected      []repository.NearbyLocation
		expectError   bool
		expectCall    bool
	}{
		{
			name:        "invalid latitude",
			lat:         91,
			lon:         -73.78,
			expectError: true,
		},
		{
			name:        "invalid longitude",
			lat:         40.9,
			lon:         -181,
			expectError: true,
		},
		{
			name:        "NaN latitude",
			lat:         math.NaN(),
			lon:         -73.78,
			expectError: true,
		},
		{
			name:          "default limit",
			lat:           40.9,
			lon:           -73.78,
			expectedLimit: DefaultNearbyLimit,
			mockResult:    []repository.NearbyLocation{station},
			expected:      []repository.NearbyLocation{station},
			expectCall:    true,
		},
		{
			name:          "limit is capped",
			lat:           40.9,
			lon:           -73.78,
			limit:         1000,
			expectedLimit: MaxNearbyLimit,
			mockResult:    []repository.NearbyLocation{},
			expected:      []repository.NearbyLocation{},
			expectCall:    true,
		},
		{
			name:          "repository error",
			lat:           40.9,
			lon:           -73.78,
			limit:         2,
			expectedLimit: 2,
			mockError:     assert.AnError,
			expectError:   true,
			expectCall:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockNearbyRepository)
			service := NewNearbyService(mockRepo)

			if tt.expectCall {
				mockRepo.On("FindNearestLocations", mock.Anything, tt.lat, tt.lon, tt.expectedLimit).Return(tt.mockResult, tt.mockError)
			}

			// Execute
			result, err := service.Nearby(context.Background(), tt.lat, tt.lon, tt.limit)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
