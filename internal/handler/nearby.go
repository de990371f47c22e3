package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jcao219/new-ro-transit/internal/models"
	"github.com/jcao219/new-ro-transit/internal/repository"

	"github.com/gin-gonic/gin"
)

// NearbyHandler handles nearest-location requests
type NearbyHandler struct {
	service NearbyService
}

// NearbyService interface for dependency injection
type NearbyService interface {
	Nearby(context.Context, float64, float64, int) ([]repository.NearbyLocation, error)
}

// NewNearbyHandler creates a new nearby handler
func NewNearbyHandler(svc NearbyService) *NearbyHandler {
	return &NearbyHandler{service: svc}
}

// Nearby godoc
// @Summary      Nearest locations
// @Description  Mapped locations closest to a point, nearest first
// @Tags         locations
// @Produce      json
// @Param        lat    query     number   true   "latitude"
// @Param        lon    query     number   true   "longitude"
// @Param        limit  query     integer  false  "maximum results (default 5, max 25)"
// @Success      200    {array}   repository.NearbyLocation
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/locations/nearby [get]
func (h *NearbyHandler) Nearby(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || !models.ValidLatitude(lat) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || !models.ValidLongitude(lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	locations, err := h.service.Nearby(c.Request.Context(), lat, lon, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if len(locations) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no locations found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, locations)
}
