package analysis

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/metrics"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/repository"
)

// Runner is the interface that all analysis runners must implement
type Runner interface {
	// Run executes the analysis for a given task. The runner reports
	// progress through the task repository and returns a JSON summary.
	Run(ctx context.Context, task *models.AnalysisTask) (string, error)

	// Kind returns the task kind this runner handles
	Kind() string
}

// Engine dispatches analysis tasks to registered runners. Each task runs
// in its own goroutine; callers poll the task row for progress.
type Engine struct {
	tasks   *repository.TaskRepository
	runners map[string]Runner
}

// NewEngine creates a new analysis engine
func NewEngine(tasks *repository.TaskRepository) *Engine {
	return &Engine{
		tasks:   tasks,
		runners: make(map[string]Runner),
	}
}

// Register adds a runner for its task kind
func (e *Engine) Register(r Runner) {
	e.runners[r.Kind()] = r
}

// Start creates a task row and launches the matching runner in the
// background. Returns the created task so callers can report its id.
func (e *Engine) Start(kind, paramsJSON, createdBy string) (*models.AnalysisTask, error) {
	runner, ok := e.runners[kind]
	if !ok {
		return nil, fmt.Errorf("unknown task kind: %s", kind)
	}

	task := &models.AnalysisTask{
		RequestID:  uuid.NewString(),
		Kind:       kind,
		ParamsJSON: paramsJSON,
		CreatedBy:  createdBy,
	}
	if err := e.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	go e.execute(runner, task)

	return task, nil
}

func (e *Engine) execute(runner Runner, task *models.AnalysisTask) {
	ctx := context.Background()

	if err := e.tasks.MarkRunning(task.ID); err != nil {
		log.Printf("[Analysis] Failed to mark task %d running: %v", task.ID, err)
		return
	}
	log.Printf("[Analysis] Task %d (%s) started", task.ID, task.Kind)

	summary, err := runner.Run(ctx, task)
	if err != nil {
		log.Printf("[Analysis] Task %d failed: %v", task.ID, err)
		metrics.AnalysisTasksTotal.WithLabelValues(task.Kind, "failed").Inc()
		if markErr := e.tasks.MarkFailed(task.ID, err.Error()); markErr != nil {
			log.Printf("[Analysis] Failed to mark task %d failed: %v", task.ID, markErr)
		}
		return
	}

	metrics.AnalysisTasksTotal.WithLabelValues(task.Kind, "completed").Inc()
	if err := e.tasks.MarkCompleted(task.ID, summary); err != nil {
		log.Printf("[Analysis] Failed to mark task %d completed: %v", task.ID, err)
		return
	}
	log.Printf("[Analysis] Task %d (%s) completed", task.ID, task.Kind)
}
