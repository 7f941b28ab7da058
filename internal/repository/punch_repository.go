package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// PunchRepository handles database operations for time-clock punches
type PunchRepository struct {
	db *sql.DB
}

// NewPunchRepository creates a new punch repository
func NewPunchRepository(db *sql.DB) *PunchRepository {
	return &PunchRepository{db: db}
}

// InsertBatch stores a batch of punches in one transaction
func (r *PunchRepository) InsertBatch(punches []models.PunchRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO punches (technician_id, date, kind, timestamp)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range punches {
		_, err := stmt.Exec(p.TechnicianID, p.Date, string(p.Kind), p.Timestamp.UTC().Format(time.RFC3339))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert punch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit punches: %w", err)
	}
	return nil
}

// GetByTechnicianAndDate retrieves one technician-day's punches ordered by timestamp
func (r *PunchRepository) GetByTechnicianAndDate(technicianID int64, date string) ([]models.PunchRecord, error) {
	query := `
		SELECT id, technician_id, date, kind, timestamp
		FROM punches
		WHERE technician_id = ? AND date = ?
		ORDER BY timestamp
	`

	rows, err := r.db.Query(query, technicianID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []models.PunchRecord
	for rows.Next() {
		var p models.PunchRecord
		var kind, ts string
		if err := rows.Scan(&p.ID, &p.TechnicianID, &p.Date, &kind, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		p.Kind = models.EventKind(kind)
		p.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("invalid punch timestamp %q: %w", ts, err)
		}
		punches = append(punches, p)
	}

	return punches, rows.Err()
}
