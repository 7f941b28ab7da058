package models

import "time"

// PunchRecord is one time-clock punch from the payroll feed. Punches are
// stored as delivered and surfaced as pre-built timeline events; the engine
// only interleaves them by timestamp.
type PunchRecord struct {
	ID           int64     `json:"id" db:"id"`
	TechnicianID int64     `json:"technicianId" db:"technician_id"`
	Date         string    `json:"date" db:"date"`
	Kind         EventKind `json:"kind" db:"kind"` // clock_in, clock_out, meal_start, meal_end, ...
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	CreatedAt    time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// Event converts the punch into its timeline event form.
func (p *PunchRecord) Event() TimelineEvent {
	return TimelineEvent{
		Kind:      p.Kind,
		Timestamp: p.Timestamp,
	}
}

// ValidPunchKind reports whether kind is one the payroll feed may deliver.
func ValidPunchKind(kind string) bool {
	switch EventKind(kind) {
	case EventClockIn, EventClockOut, EventMealStart, EventMealEnd,
		EventMissingClockOut, EventOvernightAtOffice, EventProposedPunch:
		return true
	}
	return false
}

// PunchInput is a single punch as delivered by the payroll feed.
type PunchInput struct {
	TechnicianID int64  `json:"technicianId" binding:"required"`
	Kind         string `json:"kind" binding:"required"`
	Timestamp    string `json:"timestamp" binding:"required"`
}
