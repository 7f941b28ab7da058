package repository

import (
	"database/sql"
	"fmt"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// SuggestionRepository handles database operations for home-location suggestions
type SuggestionRepository struct {
	db *sql.DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *sql.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Save inserts a new suggestion for a technician
func (r *SuggestionRepository) Save(s *models.HomeSuggestion) error {
	res, err := r.db.Exec(`
		INSERT INTO home_suggestions
			(technician_id, lat, lon, address, confidence, supporting_days, total_days, confirmed)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`, s.TechnicianID, s.Lat, s.Lon, s.Address, s.Confidence, s.SupportingDays, s.TotalDays)
	if err != nil {
		return fmt.Errorf("failed to insert suggestion: %w", err)
	}
	s.ID, err = res.LastInsertId()
	return err
}

// LatestByTechnician retrieves the most recent suggestion for a technician;
// nil when none exists
func (r *SuggestionRepository) LatestByTechnician(technicianID int64) (*models.HomeSuggestion, error) {
	query := `
		SELECT id, technician_id, lat, lon, COALESCE(address, ''),
		       confidence, supporting_days, total_days, confirmed
		FROM home_suggestions
		WHERE technician_id = ?
		ORDER BY id DESC
		LIMIT 1
	`

	var s models.HomeSuggestion
	err := r.db.QueryRow(query, technicianID).Scan(
		&s.ID, &s.TechnicianID, &s.Lat, &s.Lon, &s.Address,
		&s.Confidence, &s.SupportingDays, &s.TotalDays, &s.Confirmed,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestion: %w", err)
	}
	return &s, nil
}

// MarkConfirmed flags a suggestion as confirmed by a human
func (r *SuggestionRepository) MarkConfirmed(id int64) error {
	if _, err := r.db.Exec("UPDATE home_suggestions SET confirmed = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to confirm suggestion: %w", err)
	}
	return nil
}
