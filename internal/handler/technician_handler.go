package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
	"github.com/fieldtrace/fieldtrace-backend-go/pkg/response"
)

// TechnicianHandler handles HTTP requests for technicians and their
// engine configuration (office, home, custom geofences).
type TechnicianHandler struct {
	technicians *repository.TechnicianRepository
	suggestions *repository.SuggestionRepository
}

// NewTechnicianHandler creates a new technician handler
func NewTechnicianHandler(
	technicians *repository.TechnicianRepository,
	suggestions *repository.SuggestionRepository,
) *TechnicianHandler {
	return &TechnicianHandler{technicians: technicians, suggestions: suggestions}
}

// CreateTechnicianRequest represents the request body for creating a technician
type CreateTechnicianRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTechnician registers a new technician
// POST /api/v1/technicians
func (h *TechnicianHandler) CreateTechnician(c *gin.Context) {
	var req CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tech := &models.Technician{Name: req.Name, Active: true}
	if err := h.technicians.Create(tech); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, tech)
}

// GetConfig retrieves a technician's configuration
// GET /api/v1/technicians/:id/config
func (h *TechnicianHandler) GetConfig(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	cfg, err := h.technicians.GetConfig(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if cfg == nil {
		response.NotFound(c, "No configuration for this technician")
		return
	}

	response.Success(c, cfg)
}

// PutConfig saves a technician's configuration
// PUT /api/v1/technicians/:id/config
func (h *TechnicianHandler) PutConfig(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	var cfg models.TechnicianConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	cfg.TechnicianID = id

	for _, g := range cfg.Geofences {
		if g.RadiusFeet <= 0 && len(g.Polygon) < 3 {
			response.BadRequest(c, "geofence "+g.Name+" needs a positive radius or a polygon")
			return
		}
	}

	if err := h.technicians.SaveConfig(&cfg); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, cfg)
}

// GetHomeSuggestion returns the latest inferred home for a technician
// GET /api/v1/technicians/:id/home/suggestion
func (h *TechnicianHandler) GetHomeSuggestion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	suggestion, err := h.suggestions.LatestByTechnician(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if suggestion == nil {
		response.NotFound(c, "No home suggestion for this technician")
		return
	}

	response.Success(c, suggestion)
}

// ConfirmHome accepts the latest home suggestion as the technician's home.
// The inferred coordinate is copied onto the config; future suggestions
// still get generated but a confirmed home is never silently replaced.
// POST /api/v1/technicians/:id/home/confirm
func (h *TechnicianHandler) ConfirmHome(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	suggestion, err := h.suggestions.LatestByTechnician(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if suggestion == nil {
		response.Conflict(c, "No home suggestion to confirm")
		return
	}

	if err := h.technicians.SetHome(id, suggestion.Lat, suggestion.Lon, suggestion.Address); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if err := h.suggestions.MarkConfirmed(suggestion.ID); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	suggestion.Confirmed = true
	response.Success(c, suggestion)
}
