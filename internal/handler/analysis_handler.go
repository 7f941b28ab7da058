package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/analysis"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
	"github.com/fieldtrace/fieldtrace-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for background analysis tasks
type AnalysisHandler struct {
	engine *analysis.Engine
	tasks  *repository.TaskRepository
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(engine *analysis.Engine, tasks *repository.TaskRepository) *AnalysisHandler {
	return &AnalysisHandler{engine: engine, tasks: tasks}
}

// StartHomeInference launches a home inference scan
// POST /api/v1/analysis/home
func (h *AnalysisHandler) StartHomeInference(c *gin.Context) {
	var params analysis.HomeInferenceParams
	if err := c.ShouldBindJSON(&params); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request body")
		return
	}

	h.start(c, models.TaskKindHomeInference, params)
}

// StartTransitSweep launches a transit anomaly sweep over a date range
// POST /api/v1/analysis/transit
func (h *AnalysisHandler) StartTransitSweep(c *gin.Context) {
	var params analysis.TransitSweepParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if params.StartDate == "" || params.EndDate == "" {
		response.BadRequest(c, "startDate and endDate are required")
		return
	}

	h.start(c, models.TaskKindTransitSweep, params)
}

func (h *AnalysisHandler) start(c *gin.Context, kind string, params interface{}) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	createdBy := c.GetString("user")
	if createdBy == "" {
		createdBy = "api"
	}

	task, err := h.engine.Start(kind, string(paramsJSON), createdBy)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, task)
}

// GetTask retrieves a task by ID
// GET /api/v1/analysis/tasks/:id
func (h *AnalysisHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.tasks.GetByID(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if task == nil {
		response.NotFound(c, "Task not found")
		return
	}

	response.Success(c, task)
}
