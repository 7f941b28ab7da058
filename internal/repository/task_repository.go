package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// TaskRepository handles database operations for analysis tasks
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a pending task and returns it with the assigned id
func (r *TaskRepository) Create(t *models.AnalysisTask) error {
	res, err := r.db.Exec(`
		INSERT INTO analysis_tasks (request_id, kind, status, params_json, created_by)
		VALUES (?, ?, ?, ?, ?)
	`, t.RequestID, t.Kind, models.TaskStatusPending, t.ParamsJSON, t.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	t.ID, err = res.LastInsertId()
	t.Status = models.TaskStatusPending
	return err
}

// GetByID retrieves a task by id; nil when not found
func (r *TaskRepository) GetByID(id int64) (*models.AnalysisTask, error) {
	query := `
		SELECT id, request_id, kind, status, progress_percent,
		       COALESCE(params_json, ''), total_items, processed_items, failed_items,
		       COALESCE(result_summary, ''), COALESCE(error_message, ''),
		       COALESCE(created_by, ''), created_at, started_at, completed_at
		FROM analysis_tasks
		WHERE id = ?
	`

	var t models.AnalysisTask
	var createdAt string
	var startedAt, completedAt sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&t.ID, &t.RequestID, &t.Kind, &t.Status, &t.ProgressPercent,
		&t.ParamsJSON, &t.TotalItems, &t.ProcessedItems, &t.FailedItems,
		&t.ResultSummary, &t.ErrorMessage,
		&t.CreatedBy, &createdAt, &startedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	t.CreatedAt = parseDBTime(createdAt)
	if startedAt.Valid {
		ts := parseDBTime(startedAt.String)
		t.StartedAt = &ts
	}
	if completedAt.Valid {
		ts := parseDBTime(completedAt.String)
		t.CompletedAt = &ts
	}

	return &t, nil
}

// MarkRunning marks a task as running
func (r *TaskRepository) MarkRunning(id int64) error {
	_, err := r.db.Exec(`
		UPDATE analysis_tasks
		SET status = ?, started_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, models.TaskStatusRunning, id)
	if err != nil {
		return fmt.Errorf("failed to mark task running: %w", err)
	}
	return nil
}

// MarkCompleted marks a task as completed with a result summary
func (r *TaskRepository) MarkCompleted(id int64, summary string) error {
	_, err := r.db.Exec(`
		UPDATE analysis_tasks
		SET status = ?, progress_percent = 100, result_summary = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, models.TaskStatusCompleted, summary, id)
	if err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}
	return nil
}

// MarkFailed marks a task as failed with an error message
func (r *TaskRepository) MarkFailed(id int64, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE analysis_tasks
		SET status = ?, error_message = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, models.TaskStatusFailed, errorMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark task failed: %w", err)
	}
	return nil
}

// UpdateProgress updates a task's counters and progress percentage
func (r *TaskRepository) UpdateProgress(id int64, processed, total, failed int) error {
	percent := 0
	if total > 0 {
		percent = processed * 100 / total
	}

	_, err := r.db.Exec(`
		UPDATE analysis_tasks
		SET processed_items = ?, total_items = ?, failed_items = ?, progress_percent = ?
		WHERE id = ?
	`, processed, total, failed, percent, id)
	if err != nil {
		return fmt.Errorf("failed to update task progress: %w", err)
	}
	return nil
}

// parseDBTime handles the formats sqlite emits for CURRENT_TIMESTAMP columns
func parseDBTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
