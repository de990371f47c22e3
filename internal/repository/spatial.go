package repository

import (
	"context"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/jcao219/new-ro-transit/internal/models"
)

const (
	tolerance   = 0.0001
	minChildren = 2
	maxChildren = 8
	dimensions  = 2
	earthRadius = 6371.0 // km
)

// NearbyLocation is a location together with its distance from a query point
type NearbyLocation struct {
	models.Location
	DistanceKm float64 `json:"distance_km"`
}

type spatialLocation struct {
	loc  models.Location
	rect *rtreego.Rect
}

func (s *spatialLocation) Bounds() *rtreego.Rect {
	return s.rect
}

// SpatialIndex is an in-memory R-tree over the located entries of the
// catalogue. It is built once and only read afterwards, so it needs no lock.
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex indexes every location that has coordinates
func NewSpatialIndex(locations []models.Location) *SpatialIndex {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	size := 0
	for _, loc := range locations {
		if !loc.Located() {
			continue
		}
		p := rtreego.Point{loc.Coordinates.Lat, loc.Coordinates.Lng}
		tree.Insert(&spatialLocation{loc: loc, rect: p.ToRect(tolerance)})
		size++
	}
	return &SpatialIndex{tree: tree, size: size}
}

// Size returns the number of indexed locations
func (s *SpatialIndex) Size() int {
	return s.size
}

// FindNearestLocations returns up to limit locations closest to the point,
// nearest first
func (s *SpatialIndex) FindNearestLocations(ctx context.Context, lat, lon float64, limit int) ([]NearbyLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.size == 0 || limit <= 0 {
		return []NearbyLocation{}, nil
	}

	results := s.tree.NearestNeighbors(limit, rtreego.Point{lat, lon})

	nearby := make([]NearbyLocation, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialLocation)
		if !ok || item == nil {
			continue
		}
		nearby = append(nearby, NearbyLocation{
			Location:   item.loc,
			DistanceKm: haversine(lat, lon, item.loc.Coordinates.Lat, item.loc.Coordinates.Lng),
		})
	}

	// The tree ranks by planar degrees; reorder by great-circle distance.
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby, nil
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
