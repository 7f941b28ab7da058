package models

import "time"

// Analysis task kinds
const (
	TaskKindHomeInference = "home_inference"
	TaskKindTransitSweep  = "transit_sweep"
)

// TaskStatus constants
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// AnalysisTask represents a background analysis run (multi-day home-location
// inference or a transit-anomaly sweep over a date range).
type AnalysisTask struct {
	ID        int64  `json:"id" db:"id"`
	RequestID string `json:"requestId" db:"request_id"` // uuid assigned at creation
	Kind      string `json:"kind" db:"kind"`

	Status          string `json:"status" db:"status"`
	ProgressPercent int    `json:"progressPercent" db:"progress_percent"`

	// Input parameters
	ParamsJSON string `json:"paramsJson,omitempty" db:"params_json"`

	// Execution counters
	TotalItems     int `json:"totalItems" db:"total_items"`
	ProcessedItems int `json:"processedItems" db:"processed_items"`
	FailedItems    int `json:"failedItems" db:"failed_items"`

	ResultSummary string `json:"resultSummary,omitempty" db:"result_summary"`
	ErrorMessage  string `json:"errorMessage,omitempty" db:"error_message"`

	CreatedBy   string     `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	StartedAt   *time.Time `json:"startedAt,omitempty" db:"started_at"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}

// IsTerminal returns true if the task is in a terminal state
func (t *AnalysisTask) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}

// Progress returns the completion percentage (0-100)
func (t *AnalysisTask) Progress() float64 {
	if t.TotalItems == 0 {
		return 0
	}
	return float64(t.ProcessedItems) / float64(t.TotalItems) * 100
}
