package timeline

import (
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/geo"
)

// Options carries the tunable thresholds of the reconstruction engine.
// Zero-value fields are not valid; start from DefaultOptions.
type Options struct {
	// ArrivalRadiusFeet is the segment-to-job matching radius.
	ArrivalRadiusFeet float64

	// OfficeRadiusFeet and HomeRadiusFeet bound those geofences.
	OfficeRadiusFeet float64
	HomeRadiusFeet   float64

	// ConsolidationWindow merges office visits whose arrival falls within
	// this window of the previous visit's departure.
	ConsolidationWindow time.Duration

	// MinUnknownStop filters transient unclassified stops (traffic lights)
	// out of the event stream.
	MinUnknownStop time.Duration

	// OfficeUTCOffsetHours converts UTC to the office's wall clock for the
	// end-of-day cutoff. Fixed offset; DST transitions are not modeled.
	OfficeUTCOffsetHours int

	// EndOfDayHour is the local hour at or after which an office arrival
	// classifies as end-of-day parking.
	EndOfDayHour int

	// TransitExcessThresholdMinutes is the excess above which a job-to-job
	// transit span is flagged. Zero flags any positive excess.
	TransitExcessThresholdMinutes int

	// TransitHighSeverityMinutes is the excess at which a flagged span is
	// rendered as high severity.
	TransitHighSeverityMinutes int

	// ClusterRadiusFeet bounds a home-inference cluster.
	ClusterRadiusFeet float64
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		ArrivalRadiusFeet:             geo.ArrivalRadiusFeet,
		OfficeRadiusFeet:              geo.OfficeRadiusFeet,
		HomeRadiusFeet:                geo.HomeRadiusFeet,
		ConsolidationWindow:           15 * time.Minute,
		MinUnknownStop:                2 * time.Minute,
		OfficeUTCOffsetHours:          -5,
		EndOfDayHour:                  17,
		TransitExcessThresholdMinutes: 0,
		TransitHighSeverityMinutes:    30,
		ClusterRadiusFeet:             geo.ClusterRadiusFeet,
	}
}

// localHour returns the hour of t on the office wall clock.
func (o Options) localHour(t time.Time) int {
	return t.UTC().Add(time.Duration(o.OfficeUTCOffsetHours) * time.Hour).Hour()
}
