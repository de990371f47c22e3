package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcao219/new-ro-transit/internal/content"
	"github.com/jcao219/new-ro-transit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLandmarks(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		expected  []models.Landmark
		expectErr string
	}{
		{
			name: "located and un-located",
			csv: "Name,Lng,Lat,Description\n" +
				"New Rochelle Station,-73.782,40.907,Metro-North & Amtrak\n" +
				"Thomas Paine Cottage,,,Historic home\n",
			expected: []models.Landmark{
				{Name: "New Rochelle Station", Coordinates: &models.Coordinates{Lng: -73.782, Lat: 40.907}, Description: "Metro-North & Amtrak"},
				{Name: "Thomas Paine Cottage", Description: "Historic home"},
			},
		},
		{
			name:     "columns in any order",
			csv:      "lat,name,lng\n40.9,Hudson Park,-73.77\n",
			expected: []models.Landmark{{Name: "Hudson Park", Coordinates: &models.Coordinates{Lng: -73.77, Lat: 40.9}}},
		},
		{
			name:      "empty file",
			csv:       "",
			expectErr: "empty file",
		},
		{
			name:      "missing name column",
			csv:       "title,lng,lat\nStation,-73.7,40.9\n",
			expectErr: "no name column",
		},
		{
			name:      "blank name",
			csv:       "name,lng,lat\n,-73.7,40.9\n",
			expectErr: "line 2: name is required",
		},
		{
			name:      "half coordinates",
			csv:       "name,lng,lat\nStation,-73.7,\n",
			expectErr: "both lng and lat",
		},
		{
			name:      "invalid latitude",
			csv:       "name,lng,lat\nStation,-73.7,north\n",
			expectErr: "invalid latitude: north",
		},
		{
			name:      "NaN coordinates",
			csv:       "name,lng,lat\nStation,NaN,40.9\n",
			expectErr: "invalid longitude",
		},
		{
			name:      "out of range",
			csv:       "name,lng,lat\nStation,-200,40.9\n",
			expectErr: "invalid longitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			landmarks, err := ParseLandmarks(strings.NewReader(tt.csv))

			if tt.expectErr != "" {
				assert.ErrorContains(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, landmarks)
		})
	}
}

func TestParseRestaurants(t *testing.T) {
	csv := "name,cuisine,area,notes,website,lng,lat\n" +
		"Pinto Thai Bistro,Thai,Downtown,Lunch spot,#,-73.7829,40.9110\n" +
		"Wayside Inn,Seafood,Waterfront\n"

	restaurants, err := ParseRestaurants(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	assert.Equal(t, models.Restaurant{
		Name:        "Pinto Thai Bistro",
		Cuisine:     "Thai",
		Area:        "Downtown",
		Notes:       "Lunch spot",
		Website:     "#",
		Coordinates: &models.Coordinates{Lng: -73.7829, Lat: 40.9110},
	}, restaurants[0])
	assert.Nil(t, restaurants[1].Coordinates)
	assert.False(t, restaurants[1].HasWebsite())
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "landmarks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"landmarks": [], "source": "survey"}`), 0644))

	landmarks := []models.Landmark{
		{Name: "New Rochelle Station", Coordinates: &models.Coordinates{Lng: -73.782, Lat: 40.907}},
	}
	require.NoError(t, WriteDocument(path, LandmarksKey, landmarks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.JSONEq(t, `"survey"`, string(doc["source"]))
	assert.JSONEq(t, `[{"name":"New Rochelle Station","coords":[-73.782,40.907]}]`, string(doc[LandmarksKey]))
}

func TestWriteDocument_NotAnObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eats.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, 2]`), 0644))

	err := WriteDocument(path, RestaurantsKey, []models.Restaurant{})

	assert.ErrorContains(t, err, "not a JSON object")
}

// Imported documents load back through the catalogue.
func TestWriteDocument_LoadsIntoCatalog(t *testing.T) {
	dir := t.TempDir()

	landmarks, err := ParseLandmarks(strings.NewReader("name,lng,lat\nNew Rochelle Station,-73.782,40.907\n"))
	require.NoError(t, err)
	restaurants, err := ParseRestaurants(strings.NewReader("name,cuisine,area\nWayside Inn,Seafood,Waterfront\n"))
	require.NoError(t, err)

	require.NoError(t, WriteDocument(filepath.Join(dir, "landmarks.json"), LandmarksKey, landmarks))
	require.NoError(t, WriteDocument(filepath.Join(dir, "eats.json"), RestaurantsKey, restaurants))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transit.json"), []byte(`{"commutes": []}`), 0644))

	catalog, err := content.LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, catalog.Landmarks, 1)
	assert.Len(t, catalog.Restaurants, 1)
	assert.Len(t, catalog.Locations(), 2)
}
