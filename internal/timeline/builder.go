package timeline

import (
	"sort"
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// BuildDay turns one technician-day's vehicle segments and scheduled jobs into
// an ordered timeline. It is a pure function: no I/O, no shared state, safe to
// call concurrently across technician-days.
//
// Segments may arrive unsorted; they are processed in ascending start-time
// order. A day with zero usable segments yields an empty timeline with zero
// totals and nil lateness fields — that is the "no GPS data" state, not an
// error.
func BuildDay(tech models.Technician, date string, segments []models.VehicleSegment, jobs []models.Job, cfg *models.TechnicianConfig, opts Options) models.DayTimeline {
	tl := models.DayTimeline{
		TechnicianID:   tech.ID,
		TechnicianName: tech.Name,
		Date:           date,
		DayOfWeek:      dayOfWeek(date),
		Events:         []models.TimelineEvent{},
	}

	usable := usableSegments(segments)
	if len(usable) == 0 {
		return tl
	}

	firstJob := firstJobOfDay(jobs)
	var firstSched *time.Time
	if firstJob != nil {
		t := firstJob.ScheduledAt
		firstSched = &t
	}

	// The first segment's start is the only start point that produces a
	// "left" event, and only when it classifies as home or office; there is
	// no reliable "left" semantics for an unclassified origin.
	first := usable[0]
	startClass := Classify(first.StartLat, first.StartLon, cfg, nil, opts)
	dayStartedAtHome := startClass.Category == CategoryHome

	switch startClass.Category {
	case CategoryHome:
		tl.Events = append(tl.Events, pointEvent(models.EventLeftHome, first.StartTime, first.StartLat, first.StartLon, first.StartAddress))
	case CategoryOffice:
		tl.Events = append(tl.Events, pointEvent(models.EventLeftOffice, first.StartTime, first.StartLat, first.StartLon, first.StartAddress))
	}

	summarySet := false

	for i := range usable {
		seg := &usable[i]
		if !seg.HasEnd() {
			// Unfinished trip: no arrival, no dwell for this stop.
			continue
		}

		arrival := (*seg.EndTime).UTC()

		var travel *int
		if m := wholeMinutes(arrival.Sub(seg.StartTime)); m >= 0 {
			travel = &m
			if m > 0 {
				tl.DriveMinutes += m
			}
		}

		// Dwell at this stop runs until the next segment departs. The final
		// segment of the day has no known duration. A next segment starting
		// before this arrival (clock skew in the feed) would put the left
		// event ahead of its own arrival, so it contributes no departure.
		var departure *time.Time
		var duration *int
		if i+1 < len(usable) {
			if d := usable[i+1].StartTime; !d.Before(arrival) {
				departure = &d
				m := wholeMinutes(d.Sub(arrival))
				duration = &m
			}
		}

		matched := MatchJob(*seg.EndLat, *seg.EndLon, jobs, opts.ArrivalRadiusFeet)
		class := Classify(*seg.EndLat, *seg.EndLon, cfg, matched, opts)

		switch class.Category {
		case CategoryJob:
			v := VarianceMinutes(arrival, matched.ScheduledAt)
			isFirst := firstJob != nil && matched.ID == firstJob.ID

			sched := matched.ScheduledAt
			detail := &models.EventJobDetail{
				JobID:           matched.ID,
				JobNumber:       matched.JobNumber,
				Customer:        matched.Customer,
				ScheduledAt:     &sched,
				VarianceMinutes: &v,
				IsLate:          IsLate(v),
				IsFirstJob:      isFirst,
			}

			// Only the first arrival at the first job of the day sets the
			// day-level summary; later arrivals keep their own variance.
			if isFirst && !summarySet {
				onTime := !IsLate(v)
				vv := v
				tl.FirstJobOnTime = &onTime
				tl.FirstJobVarianceMinutes = &vv
				summarySet = true
			}

			ev := pointEvent(models.EventArrivedJob, arrival, *seg.EndLat, *seg.EndLon, eventAddress(seg.EndAddress, matched.Address))
			ev.Job = detail
			ev.TravelMinutes = travel
			ev.DurationMinutes = duration
			tl.Events = append(tl.Events, ev)
			tl.JobCount++

			if departure != nil {
				left := pointEvent(models.EventLeftJob, *departure, *seg.EndLat, *seg.EndLon, eventAddress(seg.EndAddress, matched.Address))
				left.Job = &models.EventJobDetail{
					JobID:      matched.ID,
					JobNumber:  matched.JobNumber,
					Customer:   matched.Customer,
					IsFirstJob: isFirst,
				}
				tl.Events = append(tl.Events, left)
			}

		case CategoryOffice:
			ev := pointEvent(models.EventArrivedOffice, arrival, *seg.EndLat, *seg.EndLon, eventAddress(seg.EndAddress, cfg.OfficeAddress))
			ev.TravelMinutes = travel
			ev.DurationMinutes = duration
			ev.IsUnnecessary = unnecessaryOfficeArrival(arrival, cfg, dayStartedAtHome, firstSched)
			tl.Events = append(tl.Events, ev)
			tl.OfficeVisitCount++

			if departure != nil {
				tl.Events = append(tl.Events, pointEvent(models.EventLeftOffice, *departure, *seg.EndLat, *seg.EndLon, eventAddress(seg.EndAddress, cfg.OfficeAddress)))
			}

		case CategoryHome:
			ev := pointEvent(models.EventArrivedHome, arrival, *seg.EndLat, *seg.EndLon, eventAddress(seg.EndAddress, cfg.HomeAddress))
			ev.TravelMinutes = travel
			ev.DurationMinutes = duration
			tl.Events = append(tl.Events, ev)

			if departure != nil {
				tl.Events = append(tl.Events, pointEvent(models.EventLeftHome, *departure, *seg.EndLat, *seg.EndLon, eventAddress(seg.EndAddress, cfg.HomeAddress)))
			}

		case CategoryUnknown:
			// Transient stops (traffic lights, drive-throughs) are noise;
			// only surface unknown stops with a known dwell of 2+ minutes.
			if duration == nil || time.Duration(*duration)*time.Minute < opts.MinUnknownStop {
				continue
			}
			ev := pointEvent(models.EventArrivedUnknown, arrival, *seg.EndLat, *seg.EndLon, seg.EndAddress)
			ev.TravelMinutes = travel
			ev.DurationMinutes = duration
			tl.Events = append(tl.Events, ev)

			if departure != nil {
				tl.Events = append(tl.Events, pointEvent(models.EventLeftUnknown, *departure, *seg.EndLat, *seg.EndLon, seg.EndAddress))
			}

		default:
			// Custom labeled geofence category
			ev := pointEvent(models.EventArrivedCustom, arrival, *seg.EndLat, *seg.EndLon, seg.EndAddress)
			ev.Label = class.Geofence.Name
			ev.TravelMinutes = travel
			ev.DurationMinutes = duration
			tl.Events = append(tl.Events, ev)

			if departure != nil {
				left := pointEvent(models.EventLeftCustom, *departure, *seg.EndLat, *seg.EndLon, seg.EndAddress)
				left.Label = class.Geofence.Name
				tl.Events = append(tl.Events, left)
			}
		}
	}

	return tl
}

// MergeEvents interleaves externally supplied events (punches, corrections)
// into a built event stream by timestamp. The sort is stable, so the relative
// order of equal-timestamp events is preserved.
func MergeEvents(built, external []models.TimelineEvent) []models.TimelineEvent {
	merged := make([]models.TimelineEvent, 0, len(built)+len(external))
	merged = append(merged, built...)
	merged = append(merged, external...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})
	return merged
}

// unnecessaryOfficeArrival reports whether an office arrival should not have
// occurred: a take-home technician with a confirmed home who left home that
// morning has no reason to stop at the office before the first scheduled job.
func unnecessaryOfficeArrival(arrival time.Time, cfg *models.TechnicianConfig, dayStartedAtHome bool, firstSched *time.Time) bool {
	return cfg.TakesVehicleHome &&
		cfg.HasHome() &&
		dayStartedAtHome &&
		firstSched != nil &&
		arrival.Before(*firstSched)
}

// usableSegments filters out segments with no start time and sorts the rest
// by start time ascending.
func usableSegments(segments []models.VehicleSegment) []models.VehicleSegment {
	usable := make([]models.VehicleSegment, 0, len(segments))
	for _, s := range segments {
		if s.StartTime.IsZero() {
			continue
		}
		usable = append(usable, s)
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].StartTime.Before(usable[j].StartTime)
	})
	return usable
}

// firstJobOfDay returns the job flagged as first of day, or the earliest
// scheduled job when no flag is set.
func firstJobOfDay(jobs []models.Job) *models.Job {
	for i := range jobs {
		if jobs[i].FirstOfDay {
			return &jobs[i]
		}
	}
	var first *models.Job
	for i := range jobs {
		if first == nil || jobs[i].ScheduledAt.Before(first.ScheduledAt) {
			first = &jobs[i]
		}
	}
	return first
}

func pointEvent(kind models.EventKind, ts time.Time, lat, lon float64, address string) models.TimelineEvent {
	la, lo := lat, lon
	return models.TimelineEvent{
		Kind:      kind,
		Timestamp: ts,
		Lat:       &la,
		Lon:       &lo,
		Address:   address,
	}
}

func eventAddress(segmentAddr, fallback string) string {
	if segmentAddr != "" {
		return segmentAddr
	}
	return fallback
}

// wholeMinutes truncates a duration to whole minutes.
func wholeMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

// dayOfWeek labels a YYYY-MM-DD date; empty on a malformed date.
func dayOfWeek(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
