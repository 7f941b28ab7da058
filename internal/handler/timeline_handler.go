package handler

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/service"
	"github.com/fieldtrace/fieldtrace-backend-go/pkg/response"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TimelineHandler handles HTTP requests for reconstructed timelines
type TimelineHandler struct {
	service *service.TimelineService
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(service *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{service: service}
}

// GetTimeline reconstructs and returns a technician's timeline for one day
// GET /api/v1/technicians/:id/timeline?date=YYYY-MM-DD
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid technician ID")
		return
	}

	date := c.Query("date")
	if !datePattern.MatchString(date) {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	result, err := h.service.BuildDay(id, date)
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}

	response.Success(c, result)
}
