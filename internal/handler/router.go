package handler

import (
	"net/http"

	_ "github.com/jcao219/new-ro-transit/docs"
	"github.com/jcao219/new-ro-transit/internal/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the handlers and middleware dependencies of the router
type Handlers struct {
	Pages     *PageHandler
	Locations *LocationHandler
	Nearby    *NearbyHandler
	Visits    *VisitHandler
	Counter   VisitService
}

// NewRouter wires every route. Page requests, including unmatched ones, pass
// through the visit counter; static files, the API and health checks do not.
func NewRouter(h Handlers) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", web.Static())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/locations", h.Locations.Locations)
	api.GET("/locations/nearby", h.Nearby.Nearby)
	api.GET("/visits", h.Visits.Visits)

	counter := VisitCounter(h.Counter)
	pages := r.Group("/", counter)
	pages.GET("/", h.Pages.Home)
	pages.GET("/commute", h.Pages.Commute)
	pages.GET("/restaurants", h.Pages.Restaurants)
	pages.GET("/map", h.Pages.Map)

	r.NoRoute(counter, h.Pages.NotFound)

	return r, nil
}
