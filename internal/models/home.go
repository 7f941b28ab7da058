package models

import "time"

// Home suggestion confidence levels
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// HomeSuggestion is the inferred home location for a technician, produced by
// clustering multi-day GPS starting points. Advisory only: it becomes the
// authoritative home configuration once a human confirms it.
type HomeSuggestion struct {
	ID           int64  `json:"id" db:"id"`
	TechnicianID int64  `json:"technicianId" db:"technician_id"`

	Lat     float64 `json:"lat" db:"lat"`
	Lon     float64 `json:"lon" db:"lon"`
	Address string  `json:"address,omitempty" db:"address"`

	Confidence     string `json:"confidence" db:"confidence"`
	SupportingDays int    `json:"supportingDays" db:"supporting_days"`
	TotalDays      int    `json:"totalDays" db:"total_days"`
	Confirmed      bool   `json:"confirmed" db:"confirmed"`

	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// DayStart is the first segment's starting point for one day, the input unit
// of home-location inference.
type DayStart struct {
	Date    string  `json:"date"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
}
