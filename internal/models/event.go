package models

import "time"

// EventKind identifies the variant of a timeline event
type EventKind string

// Event kinds produced by the timeline builder
const (
	EventLeftHome       EventKind = "left_home"
	EventArrivedHome    EventKind = "arrived_home"
	EventLeftOffice     EventKind = "left_office"
	EventArrivedOffice  EventKind = "arrived_office"
	EventArrivedJob     EventKind = "arrived_job"
	EventLeftJob        EventKind = "left_job"
	EventArrivedUnknown EventKind = "arrived_unknown"
	EventLeftUnknown    EventKind = "left_unknown"
	EventArrivedCustom  EventKind = "arrived_custom"
	EventLeftCustom     EventKind = "left_custom"
)

// Event kinds supplied pre-built by the surrounding system (punch feed and
// human-entered corrections) and merged into the stream by timestamp
const (
	EventClockIn           EventKind = "clock_in"
	EventClockOut          EventKind = "clock_out"
	EventMealStart         EventKind = "meal_start"
	EventMealEnd           EventKind = "meal_end"
	EventMissingClockOut   EventKind = "missing_clock_out"
	EventOvernightAtOffice EventKind = "overnight_at_office"
	EventProposedPunch     EventKind = "proposed_punch"
)

// TimelineEvent is one entry in a technician's day timeline. Kind selects the
// variant; the optional field groups are populated per kind (Job only on job
// arrivals/departures, Label only on custom-geofence events, and so on).
// Events are built once per day computation and never mutated afterward.
type TimelineEvent struct {
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Address string   `json:"address,omitempty"`

	// Label is the geofence name for arrived_custom/left_custom events.
	Label string `json:"label,omitempty"`

	Job *EventJobDetail `json:"job,omitempty"`

	// DurationMinutes is the dwell time at this stop, known only when a later
	// segment departs from it. Never negative.
	DurationMinutes *int `json:"durationMinutes,omitempty"`

	// TravelMinutes is the drive time spent reaching this stop. Never negative.
	TravelMinutes *int `json:"travelMinutes,omitempty"`

	// IsUnnecessary marks an office arrival that should not have occurred
	// (take-home technician visiting the office before the first job).
	IsUnnecessary bool `json:"isUnnecessary,omitempty"`
}

// EventJobDetail carries the job-specific fields of arrived_job/left_job events.
type EventJobDetail struct {
	JobID           int64      `json:"jobId"`
	JobNumber       string     `json:"jobNumber"`
	Customer        string     `json:"customer,omitempty"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	VarianceMinutes *int       `json:"varianceMinutes,omitempty"`
	IsLate          bool       `json:"isLate"`
	IsFirstJob      bool       `json:"isFirstJob"`
}
