package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/service"
)

// TransitSweepRunner rebuilds timelines for every active technician over a
// date range and tallies transit anomalies. The per-day detail is available
// through the timeline endpoint; the task stores the aggregate counts.
type TransitSweepRunner struct {
	technicians *repository.TechnicianRepository
	timelines   *service.TimelineService
	tasks       *repository.TaskRepository
}

// TransitSweepParams are the parameters for a transit sweep task
type TransitSweepParams struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type transitSweepSummary struct {
	DaysScanned      int `json:"daysScanned"`
	AnomaliesFound   int `json:"anomaliesFound"`
	HighSeverity     int `json:"highSeverity"`
	SuspiciousDrives int `json:"suspiciousDrives"`
}

// NewTransitSweepRunner creates a new transit sweep runner
func NewTransitSweepRunner(
	technicians *repository.TechnicianRepository,
	timelines *service.TimelineService,
	tasks *repository.TaskRepository,
) *TransitSweepRunner {
	return &TransitSweepRunner{
		technicians: technicians,
		timelines:   timelines,
		tasks:       tasks,
	}
}

// Kind returns the task kind this runner handles
func (r *TransitSweepRunner) Kind() string {
	return models.TaskKindTransitSweep
}

// Run executes the sweep over the requested date range
func (r *TransitSweepRunner) Run(ctx context.Context, task *models.AnalysisTask) (string, error) {
	var params TransitSweepParams
	if err := json.Unmarshal([]byte(task.ParamsJSON), &params); err != nil {
		return "", fmt.Errorf("invalid task params: %w", err)
	}

	start, err := time.Parse("2006-01-02", params.StartDate)
	if err != nil {
		return "", fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", params.EndDate)
	if err != nil {
		return "", fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return "", fmt.Errorf("end_date %s is before start_date %s", params.EndDate, params.StartDate)
	}

	techs, err := r.technicians.ListActive()
	if err != nil {
		return "", fmt.Errorf("failed to list technicians: %w", err)
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	total := totalDays * len(techs)

	summary := transitSweepSummary{}
	processed := 0
	failed := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		for _, tech := range techs {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			default:
			}

			processed++
			result, err := r.timelines.BuildDay(tech.ID, date)
			if err != nil {
				log.Printf("[TransitSweep] Technician %d on %s: %v", tech.ID, date, err)
				failed++
				continue
			}

			summary.DaysScanned++
			for _, a := range result.Anomalies {
				summary.AnomaliesFound++
				if a.Severity == models.SeverityHigh {
					summary.HighSeverity++
				}
				if a.IsSuspicious {
					summary.SuspiciousDrives++
				}
			}
		}

		if err := r.tasks.UpdateProgress(task.ID, processed, total, failed); err != nil {
			log.Printf("[TransitSweep] Failed to update progress for task %d: %v", task.ID, err)
		}
	}

	out, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	return string(out), nil
}
