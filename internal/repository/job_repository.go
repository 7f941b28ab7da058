package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// JobRepository handles database operations for scheduled jobs
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// InsertBatch stores a batch of jobs in one transaction
func (r *JobRepository) InsertBatch(jobs []models.Job) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO jobs
			(technician_id, date, job_number, customer, scheduled_at,
			 site_lat, site_lon, address, first_of_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, j := range jobs {
		_, err := stmt.Exec(
			j.TechnicianID, j.Date, j.JobNumber, j.Customer,
			j.ScheduledAt.UTC().Format(time.RFC3339),
			j.SiteLat, j.SiteLon, j.Address, j.FirstOfDay,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert job: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit jobs: %w", err)
	}
	return nil
}

// GetByTechnicianAndDate retrieves one technician-day's jobs ordered by
// scheduled time. The order matters: it is the deterministic tie-break for
// segment-job matching.
func (r *JobRepository) GetByTechnicianAndDate(technicianID int64, date string) ([]models.Job, error) {
	query := `
		SELECT id, technician_id, date, job_number, COALESCE(customer, ''),
		       scheduled_at, site_lat, site_lon, COALESCE(address, ''), first_of_day
		FROM jobs
		WHERE technician_id = ? AND date = ?
		ORDER BY scheduled_at, id
	`

	rows, err := r.db.Query(query, technicianID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		var scheduledAt string
		err := rows.Scan(
			&j.ID, &j.TechnicianID, &j.Date, &j.JobNumber, &j.Customer,
			&scheduledAt, &j.SiteLat, &j.SiteLon, &j.Address, &j.FirstOfDay,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		j.ScheduledAt, err = time.Parse(time.RFC3339, scheduledAt)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_at %q: %w", scheduledAt, err)
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}
