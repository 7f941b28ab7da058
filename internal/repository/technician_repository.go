package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// TechnicianRepository handles database operations for technicians and their
// configuration
type TechnicianRepository struct {
	db *sql.DB
}

// NewTechnicianRepository creates a new technician repository
func NewTechnicianRepository(db *sql.DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

// Create inserts a technician and returns it with the assigned id
func (r *TechnicianRepository) Create(t *models.Technician) error {
	res, err := r.db.Exec("INSERT INTO technicians (name, active) VALUES (?, ?)", t.Name, t.Active)
	if err != nil {
		return fmt.Errorf("failed to insert technician: %w", err)
	}
	t.ID, err = res.LastInsertId()
	return err
}

// GetByID retrieves a technician by id
func (r *TechnicianRepository) GetByID(id int64) (*models.Technician, error) {
	var t models.Technician
	err := r.db.QueryRow("SELECT id, name, active FROM technicians WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &t.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query technician: %w", err)
	}
	return &t, nil
}

// ListActive retrieves all active technicians
func (r *TechnicianRepository) ListActive() ([]models.Technician, error) {
	rows, err := r.db.Query("SELECT id, name, active FROM technicians WHERE active = 1 ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query technicians: %w", err)
	}
	defer rows.Close()

	var techs []models.Technician
	for rows.Next() {
		var t models.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Active); err != nil {
			return nil, fmt.Errorf("failed to scan technician: %w", err)
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

// GetConfig retrieves a technician's configuration; nil when none is stored
func (r *TechnicianRepository) GetConfig(technicianID int64) (*models.TechnicianConfig, error) {
	query := `
		SELECT technician_id, takes_vehicle_home, home_lat, home_lon,
		       COALESCE(home_address, ''), office_lat, office_lon,
		       COALESCE(office_address, ''), geofences_json
		FROM technician_configs
		WHERE technician_id = ?
	`

	var cfg models.TechnicianConfig
	var geofencesJSON sql.NullString
	err := r.db.QueryRow(query, technicianID).Scan(
		&cfg.TechnicianID, &cfg.TakesVehicleHome, &cfg.HomeLat, &cfg.HomeLon,
		&cfg.HomeAddress, &cfg.OfficeLat, &cfg.OfficeLon,
		&cfg.OfficeAddress, &geofencesJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query technician config: %w", err)
	}

	if geofencesJSON.Valid && geofencesJSON.String != "" {
		if err := json.Unmarshal([]byte(geofencesJSON.String), &cfg.Geofences); err != nil {
			return nil, fmt.Errorf("invalid geofences_json for technician %d: %w", technicianID, err)
		}
	}

	return &cfg, nil
}

// SaveConfig upserts a technician's configuration
func (r *TechnicianRepository) SaveConfig(cfg *models.TechnicianConfig) error {
	geofencesJSON, err := json.Marshal(cfg.Geofences)
	if err != nil {
		return fmt.Errorf("failed to marshal geofences: %w", err)
	}

	query := `
		INSERT INTO technician_configs
			(technician_id, takes_vehicle_home, home_lat, home_lon, home_address,
			 office_lat, office_lon, office_address, geofences_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(technician_id) DO UPDATE SET
			takes_vehicle_home = excluded.takes_vehicle_home,
			home_lat = excluded.home_lat,
			home_lon = excluded.home_lon,
			home_address = excluded.home_address,
			office_lat = excluded.office_lat,
			office_lon = excluded.office_lon,
			office_address = excluded.office_address,
			geofences_json = excluded.geofences_json,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err = r.db.Exec(query,
		cfg.TechnicianID, cfg.TakesVehicleHome, cfg.HomeLat, cfg.HomeLon, cfg.HomeAddress,
		cfg.OfficeLat, cfg.OfficeLon, cfg.OfficeAddress, string(geofencesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save technician config: %w", err)
	}
	return nil
}

// SetHome updates only the home coordinate and address of a configuration
func (r *TechnicianRepository) SetHome(technicianID int64, lat, lon float64, address string) error {
	res, err := r.db.Exec(`
		UPDATE technician_configs
		SET home_lat = ?, home_lon = ?, home_address = ?, updated_at = CURRENT_TIMESTAMP
		WHERE technician_id = ?
	`, lat, lon, address, technicianID)
	if err != nil {
		return fmt.Errorf("failed to set home: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no configuration for technician %d", technicianID)
	}
	return nil
}
