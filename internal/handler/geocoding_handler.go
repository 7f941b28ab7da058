package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/service"
	"github.com/fieldtrace/fieldtrace-backend-go/pkg/response"
)

// GeocodingHandler handles reverse geocoding lookups for the dashboard
type GeocodingHandler struct {
	service *service.GeocodingService
}

// NewGeocodingHandler creates a new geocoding handler
func NewGeocodingHandler(service *service.GeocodingService) *GeocodingHandler {
	return &GeocodingHandler{service: service}
}

// ReverseGeocode resolves a coordinate to an address. The lookup is best
// effort; an unreachable provider yields an empty address, not an error.
// GET /api/v1/geocode/reverse?lat=&lon=
func (h *GeocodingHandler) ReverseGeocode(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lat")
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lon")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		response.BadRequest(c, "Coordinate out of range")
		return
	}

	address := h.service.ReverseGeocode(lat, lon)
	response.Success(c, gin.H{"lat": lat, "lon": lon, "address": address})
}
