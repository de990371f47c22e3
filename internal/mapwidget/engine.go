// Package mapwidget drives an interactive map of named locations: it places
// one marker per located entry, flies the camera to a selection and owns the
// map instance from mount to unmount. The mapping library itself sits behind
// the Engine interface.
package mapwidget

import (
	"context"

	"github.com/jcao219/new-ro-transit/internal/models"
)

// Camera is a map viewpoint.
type Camera struct {
	Center    models.Coordinates `json:"center"`
	Zoom      float64            `json:"zoom"`
	Pitch     float64            `json:"pitch"`
	Bearing   float64            `json:"bearing"`
	Essential bool               `json:"essential,omitempty"`
}

// MapOptions configures a new map instance.
type MapOptions struct {
	Container   string `json:"container"`
	Style       string `json:"style"`
	AccessToken string `json:"-"`
	Camera      Camera `json:"camera"`
	Antialias   bool   `json:"antialias"`
}

// Popup is the info panel attached to a marker.
type Popup struct {
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	Offset int    `json:"offset"`
}

// MarkerOptions describes one marker. OnClick is called by engines that can
// deliver click events back to the widget.
type MarkerOptions struct {
	Name      string             `json:"name"`
	At        models.Coordinates `json:"lngLat"`
	ClassName string             `json:"className"`
	Color     string             `json:"color"`
	Popup     Popup              `json:"popup"`
	OnClick   func()             `json:"-"`
}

// PolylineOptions describes a line overlay. Label is shown in a popup when
// the line is clicked.
type PolylineOptions struct {
	Name  string               `json:"name"`
	Label string               `json:"label"`
	Path  []models.Coordinates `json:"path"`
	Color string               `json:"color"`
}

// Loader asynchronously loads the mapping library.
type Loader func(ctx context.Context) (Engine, error)

// Engine creates map instances.
type Engine interface {
	CreateMap(ctx context.Context, opts MapOptions) (Map, error)
}

// Map is a live map instance. Remove releases it together with every marker,
// popup and overlay it owns.
type Map interface {
	// Loaded blocks until the base style has loaded.
	Loaded(ctx context.Context) error
	AddMarker(opts MarkerOptions) (Marker, error)
	AddPolyline(opts PolylineOptions) error
	FlyTo(camera Camera)
	SetFullscreen(ctx context.Context, on bool) error
	Remove()
}

// Marker is a handle to a placed marker.
type Marker interface {
	SetHighlighted(on bool)
}
