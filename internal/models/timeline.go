package models

import "time"

// DayTimeline is the reconciled view of one technician-day: the ordered event
// stream plus day-level totals. It is computed on demand and never persisted.
type DayTimeline struct {
	TechnicianID   int64  `json:"technicianId"`
	TechnicianName string `json:"technicianName,omitempty"`
	Date           string `json:"date"`      // YYYY-MM-DD
	DayOfWeek      string `json:"dayOfWeek"` // Monday, Tuesday, ...

	Events []TimelineEvent `json:"events"`

	JobCount         int `json:"jobCount"`
	OfficeVisitCount int `json:"officeVisitCount"`
	DriveMinutes     int `json:"driveMinutes"`

	// First-job lateness summary. Nil when the day had no qualifying first-job
	// arrival (or no GPS data at all).
	FirstJobOnTime          *bool `json:"firstJobOnTime"`
	FirstJobVarianceMinutes *int  `json:"firstJobVarianceMinutes"`
}

// Office visit classifications
const (
	VisitMorningDeparture = "morning_departure"
	VisitMidDay           = "mid_day_visit"
	VisitEndOfDay         = "end_of_day"
)

// OfficeVisit is one consolidated stop at the office geofence.
type OfficeVisit struct {
	// ArrivedAt is nil for the synthetic "already at the office when the day
	// started" visit; DepartedAt is nil when the vehicle was still there at
	// day end.
	ArrivedAt       *time.Time `json:"arrivedAt"`
	DepartedAt      *time.Time `json:"departedAt"`
	DurationMinutes int        `json:"durationMinutes"`
	VisitType       string     `json:"visitType"`
	IsUnnecessary   bool       `json:"isUnnecessary,omitempty"`
}

// Transit anomaly severities
const (
	SeverityLow  = "low"
	SeverityHigh = "high"
)

// TransitAnomaly describes a job-to-job span whose on-the-clock transit time
// exceeded the expected direct-route drive time. Advisory, not a hard error.
type TransitAnomaly struct {
	FromJobNumber string    `json:"fromJobNumber"`
	ToJobNumber   string    `json:"toJobNumber"`
	DepartedAt    time.Time `json:"departedAt"`
	ArrivedAt     time.Time `json:"arrivedAt"`

	ExpectedMinutes int    `json:"expectedMinutes"`
	ActualMinutes   int    `json:"actualMinutes"` // elapsed minus meal breaks
	MealMinutes     int    `json:"mealMinutes"`
	ExcessMinutes   int    `json:"excessMinutes"`
	IsSuspicious    bool   `json:"isSuspicious"`
	Severity        string `json:"severity,omitempty"`
}
