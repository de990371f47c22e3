package handler

import (
	"context"
	"net/http"

	"github.com/jcao219/new-ro-transit/internal/models"

	"github.com/gin-gonic/gin"
)

// LocationHandler handles location listing requests
type LocationHandler struct {
	service LocationService
}

// LocationService interface for dependency injection
type LocationService interface {
	Locations(context.Context, string) ([]models.Location, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// Locations godoc
// @Summary      List locations
// @Description  Restaurants and landmarks, optionally filtered by category
// @Tags         locations
// @Produce      json
// @Param        category  query     string  false  "all, restaurant or landmark"
// @Success      200       {array}   models.Location
// @Failure      400       {object}  map[string]string
// @Router       /api/locations [get]
func (h *LocationHandler) Locations(c *gin.Context) {
	category := c.Query("category")
	if _, err := models.ParseCategoryFilter(category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameter 'category'"})
		return
	}

	locations, err := h.service.Locations(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, locations)
}
