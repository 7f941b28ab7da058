package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/timeline"
)

// HomeInferenceRunner scans recent day-start locations for every active
// technician and saves an inferred home suggestion where the evidence
// supports one. Confirmed homes are never overwritten; suggestions wait
// for explicit confirmation.
type HomeInferenceRunner struct {
	technicians *repository.TechnicianRepository
	segments    *repository.SegmentRepository
	suggestions *repository.SuggestionRepository
	tasks       *repository.TaskRepository

	opts         timeline.Options
	lookbackDays int
}

// HomeInferenceParams are the optional parameters for a home inference task
type HomeInferenceParams struct {
	TechnicianID int64 `json:"technicianId,omitempty"`
}

type homeInferenceSummary struct {
	TechniciansScanned int `json:"techniciansScanned"`
	SuggestionsSaved   int `json:"suggestionsSaved"`
	Skipped            int `json:"skipped"`
}

// NewHomeInferenceRunner creates a new home inference runner
func NewHomeInferenceRunner(
	technicians *repository.TechnicianRepository,
	segments *repository.SegmentRepository,
	suggestions *repository.SuggestionRepository,
	tasks *repository.TaskRepository,
	opts timeline.Options,
	lookbackDays int,
) *HomeInferenceRunner {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	return &HomeInferenceRunner{
		technicians:  technicians,
		segments:     segments,
		suggestions:  suggestions,
		tasks:        tasks,
		opts:         opts,
		lookbackDays: lookbackDays,
	}
}

// Kind returns the task kind this runner handles
func (r *HomeInferenceRunner) Kind() string {
	return models.TaskKindHomeInference
}

// Run executes home inference for one technician or the full active roster
func (r *HomeInferenceRunner) Run(ctx context.Context, task *models.AnalysisTask) (string, error) {
	var params HomeInferenceParams
	if task.ParamsJSON != "" {
		if err := json.Unmarshal([]byte(task.ParamsJSON), &params); err != nil {
			return "", fmt.Errorf("invalid task params: %w", err)
		}
	}

	var techs []models.Technician
	if params.TechnicianID != 0 {
		tech, err := r.technicians.GetByID(params.TechnicianID)
		if err != nil {
			return "", fmt.Errorf("failed to load technician: %w", err)
		}
		if tech == nil {
			return "", fmt.Errorf("technician %d not found", params.TechnicianID)
		}
		techs = []models.Technician{*tech}
	} else {
		var err error
		techs, err = r.technicians.ListActive()
		if err != nil {
			return "", fmt.Errorf("failed to list technicians: %w", err)
		}
	}

	sinceDate := time.Now().UTC().AddDate(0, 0, -r.lookbackDays).Format("2006-01-02")

	summary := homeInferenceSummary{}
	failed := 0
	for i, tech := range techs {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		summary.TechniciansScanned++
		if err := r.inferForTechnician(&techs[i], sinceDate, &summary); err != nil {
			log.Printf("[HomeInference] Technician %d: %v", tech.ID, err)
			failed++
		}

		if err := r.tasks.UpdateProgress(task.ID, i+1, len(techs), failed); err != nil {
			log.Printf("[HomeInference] Failed to update progress for task %d: %v", task.ID, err)
		}
	}

	out, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	return string(out), nil
}

func (r *HomeInferenceRunner) inferForTechnician(tech *models.Technician, sinceDate string, summary *homeInferenceSummary) error {
	cfg, err := r.technicians.GetConfig(tech.ID)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		summary.Skipped++
		return nil
	}

	starts, err := r.segments.DayStarts(tech.ID, sinceDate)
	if err != nil {
		return fmt.Errorf("failed to load day starts: %w", err)
	}

	suggestion := timeline.InferHome(starts, cfg.OfficeLat, cfg.OfficeLon, r.opts)
	if suggestion == nil {
		summary.Skipped++
		return nil
	}

	suggestion.TechnicianID = tech.ID
	if err := r.suggestions.Save(suggestion); err != nil {
		return fmt.Errorf("failed to save suggestion: %w", err)
	}
	summary.SuggestionsSaved++
	return nil
}
