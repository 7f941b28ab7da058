package models

import "time"

// VehicleSegment represents one continuous drive recorded by a vehicle's GPS unit.
// A day's segments are contiguous in time but not end-to-end continuous in space;
// the gap between one segment's end and the next segment's start is dwell time at
// a stop.
type VehicleSegment struct {
	ID           int64  `json:"id" db:"id"`
	TechnicianID int64  `json:"technicianId" db:"technician_id"`
	Date         string `json:"date" db:"date"` // YYYY-MM-DD (UTC day bucket)

	StartTime    time.Time  `json:"startTime" db:"start_time"`
	EndTime      *time.Time `json:"endTime,omitempty" db:"end_time"` // nil while the trip is unfinished
	StartLat     float64    `json:"startLat" db:"start_lat"`
	StartLon     float64    `json:"startLon" db:"start_lon"`
	StartAddress string     `json:"startAddress,omitempty" db:"start_address"`
	EndLat       *float64   `json:"endLat,omitempty" db:"end_lat"`
	EndLon       *float64   `json:"endLon,omitempty" db:"end_lon"`
	EndAddress   string     `json:"endAddress,omitempty" db:"end_address"`
	Complete     bool       `json:"complete" db:"complete"`

	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// HasEnd reports whether the segment resolved an end coordinate and time.
func (s *VehicleSegment) HasEnd() bool {
	return s.EndTime != nil && s.EndLat != nil && s.EndLon != nil
}

// SegmentInput is a single segment as delivered by the GPS telemetry feed.
// Timestamps are strings because the feed sometimes omits the UTC marker;
// they go through timeline.ParseUTC before the segment is stored.
type SegmentInput struct {
	TechnicianID int64    `json:"technicianId" binding:"required"`
	StartTime    string   `json:"startTime" binding:"required"`
	EndTime      string   `json:"endTime,omitempty"`
	StartLat     float64  `json:"startLat"`
	StartLon     float64  `json:"startLon"`
	StartAddress string   `json:"startAddress,omitempty"`
	EndLat       *float64 `json:"endLat,omitempty"`
	EndLon       *float64 `json:"endLon,omitempty"`
	EndAddress   string   `json:"endAddress,omitempty"`
	Complete     bool     `json:"complete"`
}

// SegmentFilter represents filter parameters for querying vehicle segments
type SegmentFilter struct {
	TechnicianID int64  `form:"technicianId"`
	Date         string `form:"date"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}
