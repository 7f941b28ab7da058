package models

import "time"

// Technician represents a field technician
type Technician struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// Coordinate is a plain lat/lon pair
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geofence is a labeled location configured for a technician. Either RadiusFeet
// (circle around the center) or Polygon (ray-casting containment) defines the
// boundary; a polygon with fewer than 3 vertices never matches.
type Geofence struct {
	Name       string       `json:"name"`
	Category   string       `json:"category"` // e.g. "supplier", "yard", "gas"
	CenterLat  float64      `json:"centerLat"`
	CenterLon  float64      `json:"centerLon"`
	RadiusFeet float64      `json:"radiusFeet,omitempty"`
	Polygon    []Coordinate `json:"polygon,omitempty"`
}

// TechnicianConfig holds the per-technician settings the classifier needs.
type TechnicianConfig struct {
	TechnicianID int64 `json:"technicianId" db:"technician_id"`

	// TakesVehicleHome is true when the technician keeps the vehicle
	// overnight; home classification only applies in that case.
	TakesVehicleHome bool     `json:"takesVehicleHome" db:"takes_vehicle_home"`
	HomeLat          *float64 `json:"homeLat,omitempty" db:"home_lat"`
	HomeLon          *float64 `json:"homeLon,omitempty" db:"home_lon"`
	HomeAddress      string   `json:"homeAddress,omitempty" db:"home_address"`

	OfficeLat     float64 `json:"officeLat" db:"office_lat"`
	OfficeLon     float64 `json:"officeLon" db:"office_lon"`
	OfficeAddress string  `json:"officeAddress,omitempty" db:"office_address"`

	Geofences []Geofence `json:"geofences,omitempty"`

	UpdatedAt time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// HasHome reports whether a home coordinate has been confirmed for the technician.
func (c *TechnicianConfig) HasHome() bool {
	return c.HomeLat != nil && c.HomeLon != nil
}
