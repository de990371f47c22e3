package mapwidget

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jcao219/new-ro-transit/internal/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Phase is the lifecycle position of a widget.
type Phase int

const (
	PhaseUnmounted Phase = iota
	PhaseInitializing
	PhaseReady
	// PhaseFailed is the inert state left after the library or the map could
	// not be created. It is only left by Unmount.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnmounted:
		return "unmounted"
	case PhaseInitializing:
		return "initializing"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	ErrNoContainer      = errors.New("mapwidget: no container")
	ErrAlreadyMounted   = errors.New("mapwidget: already mounted")
	ErrUnmounted        = errors.New("mapwidget: unmounted during initialization")
	ErrNotReady         = errors.New("mapwidget: map not ready")
	ErrUnknownLocation  = errors.New("mapwidget: unknown location")
	ErrNoCoordinates    = errors.New("mapwidget: location has no coordinates")
	ErrFullscreenActive = errors.New("mapwidget: fullscreen change already in progress")
)

const (
	restaurantColor = "#3b82f6"
	landmarkColor   = "#10b981"
	defaultStyle    = "mapbox://styles/mapbox/standard"
	popupOffset     = 25
)

// DefaultCamera is the initial view: downtown New Rochelle, tilted for 3D
// buildings.
var DefaultCamera = Camera{
	Center:  models.Coordinates{Lng: -73.780968, Lat: 40.911488},
	Zoom:    15,
	Pitch:   55,
	Bearing: -17.6,
}

// FocusCamera is the viewpoint used when flying to a selected location.
func FocusCamera(at models.Coordinates) Camera {
	return Camera{Center: at, Zoom: 16, Pitch: 60, Bearing: 0, Essential: true}
}

// Options configures a widget.
type Options struct {
	Container   string
	AccessToken string
	Style       string
	Camera      *Camera
	Locations   []models.Location
	Routes      []models.Route
	Logger      *zerolog.Logger
}

// SidebarEntry is one row of the location list next to the map.
type SidebarEntry struct {
	Location models.Location
	Active   bool
	Placed   bool
}

// Widget owns one map instance and its markers. All methods are safe for
// concurrent use.
type Widget struct {
	load      Loader
	opts      Options
	logger    zerolog.Logger
	locations map[string]models.Location

	mu         sync.Mutex
	phase      Phase
	gen        uint64
	m          Map
	markers    map[string]Marker
	active     string
	filter     models.CategoryFilter
	fullscreen bool
	toggling   bool
	err        error
}

// New creates an unmounted widget.
func New(load Loader, opts Options) *Widget {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if opts.Style == "" {
		opts.Style = defaultStyle
	}

	locations := make(map[string]models.Location, len(opts.Locations))
	for _, loc := range opts.Locations {
		locations[loc.Name] = loc
	}

	return &Widget{
		load:      load,
		opts:      opts,
		logger:    logger.With().Str("component", "mapwidget").Str("container", opts.Container).Logger(),
		locations: locations,
		markers:   make(map[string]Marker),
		filter:    models.FilterAll,
	}
}

// Mount loads the mapping library, creates the map and, once its style has
// loaded, places markers and route overlays. It blocks until the widget is
// ready or initialization fails.
//
// Every suspension point is followed by a liveness check: if Unmount ran in
// the meantime Mount returns ErrUnmounted and releases anything it created.
// Load or creation failures leave the widget in PhaseFailed without retrying.
func (w *Widget) Mount(ctx context.Context) error {
	w.mu.Lock()
	if w.opts.Container == "" {
		w.mu.Unlock()
		return ErrNoContainer
	}
	if w.phase != PhaseUnmounted || w.m != nil {
		w.mu.Unlock()
		return ErrAlreadyMounted
	}
	w.gen++
	gen := w.gen
	w.phase = PhaseInitializing
	w.err = nil
	w.mu.Unlock()

	engine, err := w.load(ctx)
	if err != nil {
		return w.fail(gen, "failed to load map library", err)
	}
	if !w.alive(gen) {
		return ErrUnmounted
	}

	camera := DefaultCamera
	if w.opts.Camera != nil {
		camera = *w.opts.Camera
	}
	m, err := engine.CreateMap(ctx, MapOptions{
		Container:   w.opts.Container,
		Style:       w.opts.Style,
		AccessToken: w.opts.AccessToken,
		Camera:      camera,
		Antialias:   true,
	})
	if err != nil {
		return w.fail(gen, "failed to create map", err)
	}

	w.mu.Lock()
	if w.gen != gen {
		w.mu.Unlock()
		m.Remove()
		return ErrUnmounted
	}
	w.m = m
	w.mu.Unlock()

	if err := m.Loaded(ctx); err != nil {
		return w.fail(gen, "map style did not load", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return ErrUnmounted
	}

	w.placeMarkers(m)
	w.drawRoutes(m)
	w.phase = PhaseReady
	w.logger.Debug().Int("markers", len(w.markers)).Msg("map ready")

	return nil
}

// placeMarkers must be called with w.mu held.
func (w *Widget) placeMarkers(m Map) {
	for _, loc := range w.opts.Locations {
		if !loc.Located() {
			continue
		}
		name := loc.Name
		marker, err := m.AddMarker(MarkerOptions{
			Name:      name,
			At:        *loc.Coordinates,
			ClassName: "marker " + string(loc.Category),
			Color:     categoryColor(loc.Category),
			Popup:     Popup{Title: loc.Name, Body: loc.Description, Offset: popupOffset},
			OnClick: func() {
				if err := w.Select(name); err != nil {
					w.logger.Warn().Err(err).Str("location", name).Msg("marker click ignored")
				}
			},
		})
		if err != nil {
			w.logger.Error().Err(err).Str("location", name).Msg("failed to place marker")
			continue
		}
		w.markers[name] = marker
	}
}

// drawRoutes must be called with w.mu held.
func (w *Widget) drawRoutes(m Map) {
	for _, route := range w.opts.Routes {
		from, okFrom := w.locations[route.From]
		to, okTo := w.locations[route.To]
		if !okFrom || !okTo || !from.Located() || !to.Located() {
			w.logger.Debug().Str("route", route.Name).Msg("route endpoint not on map, skipping")
			continue
		}
		err := m.AddPolyline(PolylineOptions{
			Name:  route.Name,
			Label: route.Name,
			Path:  []models.Coordinates{*from.Coordinates, *to.Coordinates},
			Color: route.Color,
		})
		if err != nil {
			w.logger.Error().Err(err).Str("route", route.Name).Msg("failed to draw route")
		}
	}
}

func categoryColor(c models.Category) string {
	if c == models.CategoryRestaurant {
		return restaurantColor
	}
	return landmarkColor
}

func (w *Widget) alive(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen == gen
}

// fail records an initialization failure for generation gen and releases a
// partially created map. Stale generations are ignored.
func (w *Widget) fail(gen uint64, msg string, err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return ErrUnmounted
	}
	if w.m != nil {
		w.m.Remove()
		w.m = nil
	}
	w.markers = make(map[string]Marker)
	w.phase = PhaseFailed
	w.err = fmt.Errorf("mapwidget: %s: %w", msg, err)
	w.logger.Error().Err(err).Msg(msg)
	return w.err
}

// Unmount releases the map and clears every handle. It is safe to call in
// any phase, including while Mount is still waiting on the library.
func (w *Widget) Unmount() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.gen++
	if w.m != nil {
		w.m.Remove()
		w.m = nil
	}
	w.markers = make(map[string]Marker)
	w.active = ""
	w.fullscreen = false
	w.phase = PhaseUnmounted
}

// Select highlights the named location and flies the camera to it. Selecting
// the active location again re-issues the same camera command.
func (w *Widget) Select(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase != PhaseReady || w.m == nil {
		return ErrNotReady
	}
	loc, ok := w.locations[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	if !loc.Located() {
		return fmt.Errorf("%w: %q", ErrNoCoordinates, name)
	}

	if prev, ok := w.markers[w.active]; ok {
		prev.SetHighlighted(false)
	}
	w.active = name
	if marker, ok := w.markers[name]; ok {
		marker.SetHighlighted(true)
	}
	w.m.FlyTo(FocusCamera(*loc.Coordinates))

	return nil
}

// SetFilter changes which locations the sidebar lists. Markers on the map are
// not affected.
func (w *Widget) SetFilter(f models.CategoryFilter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter = f
}

func (w *Widget) Filter() models.CategoryFilter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter
}

// Sidebar lists every location matching the current filter, with or without
// coordinates, in catalogue order.
func (w *Widget) Sidebar() []SidebarEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := make([]SidebarEntry, 0, len(w.opts.Locations))
	for _, loc := range w.opts.Locations {
		if !w.filter.Matches(loc.Category) {
			continue
		}
		_, placed := w.markers[loc.Name]
		entries = append(entries, SidebarEntry{
			Location: loc,
			Active:   w.active != "" && loc.Name == w.active,
			Placed:   placed,
		})
	}
	return entries
}

// Active returns the selected location, if any.
func (w *Widget) Active() (models.Location, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active == "" {
		return models.Location{}, false
	}
	return w.locations[w.active], true
}

// ToggleFullscreen asks the map to enter or leave fullscreen and waits for
// the request to complete.
func (w *Widget) ToggleFullscreen(ctx context.Context) error {
	w.mu.Lock()
	if w.phase != PhaseReady || w.m == nil {
		w.mu.Unlock()
		return ErrNotReady
	}
	if w.toggling {
		w.mu.Unlock()
		return ErrFullscreenActive
	}
	w.toggling = true
	m, gen, target := w.m, w.gen, !w.fullscreen
	w.mu.Unlock()

	err := m.SetFullscreen(ctx, target)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.toggling = false
	if w.gen != gen {
		return ErrUnmounted
	}
	if err != nil {
		w.logger.Error().Err(err).Bool("fullscreen", target).Msg("fullscreen request failed")
		return fmt.Errorf("mapwidget: fullscreen request failed: %w", err)
	}
	w.fullscreen = target
	return nil
}

func (w *Widget) Fullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *Widget) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// MarkerCount is the number of markers currently placed on the map.
func (w *Widget) MarkerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.markers)
}

// HasMap reports whether the widget currently holds a map instance.
func (w *Widget) HasMap() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.m != nil
}

// Err returns the initialization failure, if any.
func (w *Widget) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
