package service

import (
	"fmt"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/geo"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/metrics"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/timeline"
)

// TimelineService reconstructs per-day technician timelines from stored
// vehicle segments, scheduled jobs and time-clock punches.
type TimelineService struct {
	technicians *repository.TechnicianRepository
	segments    *repository.SegmentRepository
	jobs        *repository.JobRepository
	punches     *repository.PunchRepository

	opts            timeline.Options
	averageSpeedMPH float64
}

// NewTimelineService creates a new timeline service
func NewTimelineService(
	technicians *repository.TechnicianRepository,
	segments *repository.SegmentRepository,
	jobs *repository.JobRepository,
	punches *repository.PunchRepository,
	opts timeline.Options,
	averageSpeedMPH float64,
) *TimelineService {
	if averageSpeedMPH <= 0 {
		averageSpeedMPH = 35
	}
	return &TimelineService{
		technicians:     technicians,
		segments:        segments,
		jobs:            jobs,
		punches:         punches,
		opts:            opts,
		averageSpeedMPH: averageSpeedMPH,
	}
}

// DayResult bundles the reconstructed timeline with derived analyses
type DayResult struct {
	Timeline     models.DayTimeline      `json:"timeline"`
	OfficeVisits []models.OfficeVisit    `json:"officeVisits"`
	Anomalies    []models.TransitAnomaly `json:"transitAnomalies"`
}

// BuildDay reconstructs the full timeline for one technician and date
func (s *TimelineService) BuildDay(technicianID int64, date string) (*DayResult, error) {
	result, err := s.buildDay(technicianID, date)
	if err != nil {
		metrics.TimelinesBuilt.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.TimelinesBuilt.WithLabelValues("ok").Inc()
	return result, nil
}

func (s *TimelineService) buildDay(technicianID int64, date string) (*DayResult, error) {
	tech, err := s.technicians.GetByID(technicianID)
	if err != nil {
		return nil, fmt.Errorf("failed to load technician: %w", err)
	}
	if tech == nil {
		return nil, fmt.Errorf("technician %d not found", technicianID)
	}

	cfg, err := s.technicians.GetConfig(technicianID)
	if err != nil {
		return nil, fmt.Errorf("failed to load technician config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("technician %d has no configuration", technicianID)
	}

	segments, err := s.segments.GetByTechnicianAndDate(technicianID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load segments: %w", err)
	}

	jobs, err := s.jobs.GetByTechnicianAndDate(technicianID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	punches, err := s.punches.GetByTechnicianAndDate(technicianID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}

	day := timeline.BuildDay(*tech, date, segments, jobs, cfg, s.opts)

	punchEvents := make([]models.TimelineEvent, 0, len(punches))
	for _, p := range punches {
		punchEvents = append(punchEvents, p.Event())
	}
	day.Events = timeline.MergeEvents(day.Events, punchEvents)

	// The day total counts raw office arrivals; the visit list is the
	// consolidated summary view and may be shorter.
	visits := timeline.DetectOfficeVisits(segments, jobs, cfg, s.opts)

	anomalies := timeline.AnalyzeTransit(day.Events, s.expectedMinutes, s.opts)

	return &DayResult{
		Timeline:     day,
		OfficeVisits: visits,
		Anomalies:    anomalies,
	}, nil
}

// expectedMinutes estimates drive time between two points from the
// straight-line distance and a configured average speed.
func (s *TimelineService) expectedMinutes(fromLat, fromLon, toLat, toLon float64) float64 {
	miles := geo.DistanceFeet(fromLat, fromLon, toLat, toLon) / 5280.0
	return miles / s.averageSpeedMPH * 60.0
}
