package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/metrics"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/timeline"
	"github.com/fieldtrace/fieldtrace-backend-go/pkg/response"
)

// IngestHandler handles batch ingestion from the upstream GPS, scheduling
// and payroll feeds. Records with unparseable timestamps fail the whole
// batch; the feeds retry with corrected data.
type IngestHandler struct {
	segments *repository.SegmentRepository
	jobs     *repository.JobRepository
	punches  *repository.PunchRepository
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(
	segments *repository.SegmentRepository,
	jobs *repository.JobRepository,
	punches *repository.PunchRepository,
) *IngestHandler {
	return &IngestHandler{segments: segments, jobs: jobs, punches: punches}
}

// SegmentBatchRequest represents the request body for a segment batch
type SegmentBatchRequest struct {
	Segments []models.SegmentInput `json:"segments" binding:"required"`
}

// IngestSegments accepts a batch of vehicle trip segments
// POST /api/v1/segments/batch
func (h *IngestHandler) IngestSegments(c *gin.Context) {
	var req SegmentBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	segments := make([]models.VehicleSegment, 0, len(req.Segments))
	for i, in := range req.Segments {
		start, err := timeline.ParseUTC(in.StartTime)
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("segment %d: invalid startTime: %v", i, err))
			return
		}

		seg := models.VehicleSegment{
			TechnicianID: in.TechnicianID,
			Date:         start.Format("2006-01-02"),
			StartTime:    start,
			StartLat:     in.StartLat,
			StartLon:     in.StartLon,
			StartAddress: in.StartAddress,
			EndLat:       in.EndLat,
			EndLon:       in.EndLon,
			EndAddress:   in.EndAddress,
			Complete:     in.Complete,
		}
		if in.EndTime != "" {
			end, err := timeline.ParseUTC(in.EndTime)
			if err != nil {
				response.BadRequest(c, fmt.Sprintf("segment %d: invalid endTime: %v", i, err))
				return
			}
			seg.EndTime = &end
		}
		segments = append(segments, seg)
	}

	if err := h.segments.InsertBatch(segments); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	metrics.RecordsIngested.WithLabelValues("segment").Add(float64(len(segments)))
	response.Success(c, gin.H{"inserted": len(segments)})
}

// JobBatchRequest represents the request body for a job batch
type JobBatchRequest struct {
	Jobs []models.JobInput `json:"jobs" binding:"required"`
}

// IngestJobs accepts a batch of scheduled jobs
// POST /api/v1/jobs/batch
func (h *IngestHandler) IngestJobs(c *gin.Context) {
	var req JobBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	jobs := make([]models.Job, 0, len(req.Jobs))
	for i, in := range req.Jobs {
		scheduled, err := timeline.ParseUTC(in.ScheduledAt)
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("job %d: invalid scheduledAt: %v", i, err))
			return
		}

		jobs = append(jobs, models.Job{
			TechnicianID: in.TechnicianID,
			Date:         scheduled.Format("2006-01-02"),
			JobNumber:    in.JobNumber,
			Customer:     in.Customer,
			ScheduledAt:  scheduled,
			SiteLat:      in.SiteLat,
			SiteLon:      in.SiteLon,
			Address:      in.Address,
			FirstOfDay:   in.FirstOfDay,
		})
	}

	if err := h.jobs.InsertBatch(jobs); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	metrics.RecordsIngested.WithLabelValues("job").Add(float64(len(jobs)))
	response.Success(c, gin.H{"inserted": len(jobs)})
}

// PunchBatchRequest represents the request body for a punch batch
type PunchBatchRequest struct {
	Punches []models.PunchInput `json:"punches" binding:"required"`
}

// IngestPunches accepts a batch of time-clock punches
// POST /api/v1/punches/batch
func (h *IngestHandler) IngestPunches(c *gin.Context) {
	var req PunchBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	punches := make([]models.PunchRecord, 0, len(req.Punches))
	for i, in := range req.Punches {
		ts, err := timeline.ParseUTC(in.Timestamp)
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("punch %d: invalid timestamp: %v", i, err))
			return
		}
		if !models.ValidPunchKind(in.Kind) {
			response.BadRequest(c, fmt.Sprintf("punch %d: unknown kind %q", i, in.Kind))
			return
		}

		punches = append(punches, models.PunchRecord{
			TechnicianID: in.TechnicianID,
			Date:         ts.Format("2006-01-02"),
			Kind:         models.EventKind(in.Kind),
			Timestamp:    ts,
		})
	}

	if err := h.punches.InsertBatch(punches); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	metrics.RecordsIngested.WithLabelValues("punch").Add(float64(len(punches)))
	response.Success(c, gin.H{"inserted": len(punches)})
}
