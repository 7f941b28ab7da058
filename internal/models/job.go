package models

import "time"

// Job represents a scheduled visit from the job-scheduling feed. The engine
// only reads jobs; the scheduling service is the source of truth.
type Job struct {
	ID           int64  `json:"id" db:"id"`
	TechnicianID int64  `json:"technicianId" db:"technician_id"`
	Date         string `json:"date" db:"date"` // YYYY-MM-DD (UTC day bucket)

	JobNumber   string    `json:"jobNumber" db:"job_number"`
	Customer    string    `json:"customer,omitempty" db:"customer"`
	ScheduledAt time.Time `json:"scheduledAt" db:"scheduled_at"`

	// Site coordinate is nil for jobs whose address never geocoded; those
	// jobs cannot be matched to any GPS stop.
	SiteLat *float64 `json:"siteLat,omitempty" db:"site_lat"`
	SiteLon *float64 `json:"siteLon,omitempty" db:"site_lon"`
	Address string   `json:"address,omitempty" db:"address"`

	FirstOfDay bool `json:"firstOfDay" db:"first_of_day"`

	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// HasSite reports whether the job has a geocoded site coordinate.
func (j *Job) HasSite() bool {
	return j.SiteLat != nil && j.SiteLon != nil
}

// JobInput is a single job as delivered by the scheduling feed.
type JobInput struct {
	TechnicianID int64    `json:"technicianId" binding:"required"`
	JobNumber    string   `json:"jobNumber" binding:"required"`
	Customer     string   `json:"customer,omitempty"`
	ScheduledAt  string   `json:"scheduledAt" binding:"required"`
	SiteLat      *float64 `json:"siteLat,omitempty"`
	SiteLon      *float64 `json:"siteLon,omitempty"`
	Address      string   `json:"address,omitempty"`
	FirstOfDay   bool     `json:"firstOfDay"`
}

// JobFilter represents filter parameters for querying jobs
type JobFilter struct {
	TechnicianID int64  `form:"technicianId"`
	Date         string `form:"date"`
	JobNumber    string `form:"jobNumber"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}
