package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// SegmentRepository handles database operations for vehicle segments
type SegmentRepository struct {
	db *sql.DB
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// InsertBatch stores a batch of segments in one transaction
func (r *SegmentRepository) InsertBatch(segments []models.VehicleSegment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO vehicle_segments
			(technician_id, date, start_time, end_time, start_lat, start_lon, start_address,
			 end_lat, end_lon, end_address, complete)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range segments {
		var endTime interface{}
		if s.EndTime != nil {
			endTime = s.EndTime.UTC().Format(time.RFC3339)
		}
		_, err := stmt.Exec(
			s.TechnicianID, s.Date, s.StartTime.UTC().Format(time.RFC3339), endTime,
			s.StartLat, s.StartLon, s.StartAddress,
			s.EndLat, s.EndLon, s.EndAddress, s.Complete,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert segment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segments: %w", err)
	}
	return nil
}

// GetByTechnicianAndDate retrieves one technician-day's segments ordered by start time
func (r *SegmentRepository) GetByTechnicianAndDate(technicianID int64, date string) ([]models.VehicleSegment, error) {
	query := `
		SELECT id, technician_id, date, start_time, end_time,
		       start_lat, start_lon, COALESCE(start_address, ''),
		       end_lat, end_lon, COALESCE(end_address, ''), complete
		FROM vehicle_segments
		WHERE technician_id = ? AND date = ?
		ORDER BY start_time
	`

	rows, err := r.db.Query(query, technicianID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []models.VehicleSegment
	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}

	return segments, rows.Err()
}

// DayStarts returns the first segment's starting point for each day since
// sinceDate, the input unit of home-location inference.
func (r *SegmentRepository) DayStarts(technicianID int64, sinceDate string) ([]models.DayStart, error) {
	query := `
		SELECT s.date, s.start_lat, s.start_lon, COALESCE(s.start_address, '')
		FROM vehicle_segments s
		WHERE s.technician_id = ? AND s.date >= ?
		  AND s.start_time = (
			SELECT MIN(s2.start_time)
			FROM vehicle_segments s2
			WHERE s2.technician_id = s.technician_id AND s2.date = s.date
		  )
		GROUP BY s.date
		ORDER BY s.date
	`

	rows, err := r.db.Query(query, technicianID, sinceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query day starts: %w", err)
	}
	defer rows.Close()

	var starts []models.DayStart
	for rows.Next() {
		var d models.DayStart
		if err := rows.Scan(&d.Date, &d.Lat, &d.Lon, &d.Address); err != nil {
			return nil, fmt.Errorf("failed to scan day start: %w", err)
		}
		starts = append(starts, d)
	}

	return starts, rows.Err()
}

func scanSegment(rows *sql.Rows) (models.VehicleSegment, error) {
	var s models.VehicleSegment
	var startTime string
	var endTime sql.NullString

	err := rows.Scan(
		&s.ID, &s.TechnicianID, &s.Date, &startTime, &endTime,
		&s.StartLat, &s.StartLon, &s.StartAddress,
		&s.EndLat, &s.EndLon, &s.EndAddress, &s.Complete,
	)
	if err != nil {
		return s, fmt.Errorf("failed to scan segment: %w", err)
	}

	s.StartTime, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		return s, fmt.Errorf("invalid start_time %q: %w", startTime, err)
	}
	if endTime.Valid {
		t, err := time.Parse(time.RFC3339, endTime.String)
		if err != nil {
			return s, fmt.Errorf("invalid end_time %q: %w", endTime.String, err)
		}
		s.EndTime = &t
	}

	return s, nil
}
