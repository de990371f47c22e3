package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// visitsKey is the gin context key holding the visit count of the request
const visitsKey = "visits"

// VisitService interface for dependency injection
type VisitService interface {
	RecordVisit(ctx context.Context) (uint64, error)
	Visits(ctx context.Context) (uint64, error)
}

// VisitCounter increments the persisted visit counter once per request and
// stores the new total in the context. A store failure is logged and the
// request continues with a count of zero; there is no retry.
func VisitCounter(svc VisitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.RecordVisit(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("failed to record visit")
			count = 0
		}
		c.Set(visitsKey, count)
		c.Next()
	}
}

// VisitsFrom returns the count stored by VisitCounter, or zero.
func VisitsFrom(c *gin.Context) uint64 {
	v, ok := c.Get(visitsKey)
	if !ok {
		return 0
	}
	count, _ := v.(uint64)
	return count
}

// VisitHandler handles visit counter requests
type VisitHandler struct {
	service VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(svc VisitService) *VisitHandler {
	return &VisitHandler{service: svc}
}

// Visits godoc
// @Summary      Visit count
// @Description  Returns the number of page views recorded so far
// @Tags         site
// @Produce      json
// @Success      200  {object}  map[string]uint64
// @Failure      500  {object}  map[string]string
// @Router       /api/visits [get]
func (h *VisitHandler) Visits(c *gin.Context) {
	count, err := h.service.Visits(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read visits")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"visits": count})
}
