package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jcao219/new-ro-transit/internal/models"
	"github.com/jcao219/new-ro-transit/internal/service"

	"github.com/gin-gonic/gin"
)

const siteName = "NewRoTransitInfo"

// PageService interface for dependency injection
type PageService interface {
	Commutes(ctx context.Context) []models.CommuteEntry
	Restaurants(ctx context.Context) []models.Restaurant
	MapPage(ctx context.Context, req service.MapRequest) service.MapPage
}

// PageHandler renders the HTML pages of the site
type PageHandler struct {
	service PageService
	token   func() string
}

// pageData is the value passed to every page template
type pageData struct {
	Title       string
	Description string
	SiteName    string
	Year        int
	Visits      uint64
	MapAssets   bool
	Data        any
}

// NewPageHandler creates a new page handler. token is called on every map
// page request to read the map provider access token.
func NewPageHandler(svc PageService, token func() string) *PageHandler {
	if token == nil {
		token = func() string { return "" }
	}
	return &PageHandler{service: svc, token: token}
}

func (h *PageHandler) render(c *gin.Context, status int, name string, page pageData) {
	page.SiteName = siteName
	page.Year = time.Now().Year()
	page.Visits = VisitsFrom(c)
	c.HTML(status, name, page)
}

// Home handles GET / requests
func (h *PageHandler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", pageData{
		Title:       "New Rochelle: Your Connected Urban Oasis",
		Description: "Discover why New Rochelle's unbeatable transit connections make it the perfect place to live for NYC commuters.",
	})
}

// Commute handles GET /commute requests
func (h *PageHandler) Commute(c *gin.Context) {
	h.render(c, http.StatusOK, "commute.html", pageData{
		Title: "New Rochelle Commute Times to NYC & Beyond",
		Data:  h.service.Commutes(c.Request.Context()),
	})
}

// Restaurants handles GET /restaurants requests
func (h *PageHandler) Restaurants(c *gin.Context) {
	h.render(c, http.StatusOK, "restaurants.html", pageData{
		Title:       "New Rochelle Restaurants | Dining Guide",
		Description: "Explore diverse dining options available in New Rochelle, NY.",
		Data:        h.service.Restaurants(c.Request.Context()),
	})
}

// Map handles GET /map requests
func (h *PageHandler) Map(c *gin.Context) {
	page := h.service.MapPage(c.Request.Context(), service.MapRequest{
		AccessToken: h.token(),
		Category:    c.Query("category"),
		Focus:       c.Query("focus"),
	})

	h.render(c, http.StatusOK, "map.html", pageData{
		Title:     "New Rochelle Transit Map",
		MapAssets: true,
		Data:      page,
	})
}

// NotFound renders the 404 page for unmatched routes
func (h *PageHandler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", pageData{
		Title: "Page not found",
	})
}
