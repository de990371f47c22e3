package service

import (
	"context"
	"errors"

	"github.com/jcao219/new-ro-transit/internal/content"
	"github.com/jcao219/new-ro-transit/internal/mapwidget"
	"github.com/jcao219/new-ro-transit/internal/models"

	"github.com/rs/zerolog/log"
)

// MapContainer is the id of the element the map is drawn into
const MapContainer = "map"

// MapRequest carries the per-request inputs of the map page
type MapRequest struct {
	AccessToken string
	Category    string
	Focus       string
}

// MapPage is everything the map template needs
type MapPage struct {
	AccessToken string
	Filter      models.CategoryFilter
	Sidebar     []mapwidget.SidebarEntry
	Active      string
	Markers     int
	Ready       bool
	Notice      string
	Plan        []mapwidget.Command
}

// PageService prepares the data shown on each page from the catalogue
type PageService struct {
	catalog *content.Catalog
}

// NewPageService creates a new page service
func NewPageService(catalog *content.Catalog) *PageService {
	return &PageService{catalog: catalog}
}

func (s *PageService) Commutes(ctx context.Context) []models.CommuteEntry {
	return s.catalog.Commutes
}

func (s *PageService) Restaurants(ctx context.Context) []models.Restaurant {
	return s.catalog.Restaurants
}

// MapPage mounts a map widget against the plan engine, applies the requested
// filter and selection, and captures the sidebar and the recorded plan. The
// widget is unmounted before returning.
func (s *PageService) MapPage(ctx context.Context, req MapRequest) MapPage {
	engine := mapwidget.NewPlanEngine()
	w := mapwidget.New(engine.Loader(), mapwidget.Options{
		Container:   MapContainer,
		AccessToken: req.AccessToken,
		Locations:   s.catalog.Locations(),
		Routes:      s.catalog.Routes,
	})
	defer w.Unmount()

	page := MapPage{AccessToken: req.AccessToken}

	if err := w.Mount(ctx); err != nil {
		log.Error().Err(err).Msg("map widget failed to initialize")
	}

	filter, err := models.ParseCategoryFilter(req.Category)
	if err != nil {
		page.Notice = "Unknown category, showing all locations."
	}
	w.SetFilter(filter)

	if req.Focus != "" {
		if err := w.Select(req.Focus); err != nil {
			switch {
			case errors.Is(err, mapwidget.ErrNoCoordinates):
				page.Notice = req.Focus + " is not on the map yet."
			case errors.Is(err, mapwidget.ErrUnknownLocation):
				page.Notice = "No location named " + req.Focus + "."
			}
		}
	}

	if active, ok := w.Active(); ok {
		page.Active = active.Name
	}
	page.Filter = w.Filter()
	page.Sidebar = w.Sidebar()
	page.Markers = w.MarkerCount()
	page.Ready = w.Phase() == mapwidget.PhaseReady
	page.Plan = engine.Commands()

	return page
}
