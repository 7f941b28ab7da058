package timeline

import (
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/geo"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// rawVisit is an office stop before consolidation.
type rawVisit struct {
	arrived  *time.Time // nil only for the synthetic day-start visit
	departed *time.Time // nil when the vehicle stayed through day end
	dayStart bool
}

// effectiveDeparture is the instant this visit ends for consolidation
// purposes: the departure when known, otherwise the arrival.
func (v *rawVisit) effectiveDeparture() *time.Time {
	if v.departed != nil {
		return v.departed
	}
	return v.arrived
}

// DetectOfficeVisits extracts, consolidates and classifies the day's stops at
// the office geofence. It runs over the full segment list independently of
// BuildDay and feeds the office-visit summary, not the raw event stream.
func DetectOfficeVisits(segments []models.VehicleSegment, jobs []models.Job, cfg *models.TechnicianConfig, opts Options) []models.OfficeVisit {
	usable := usableSegments(segments)
	if len(usable) == 0 {
		return []models.OfficeVisit{}
	}

	firstJob := firstJobOfDay(jobs)
	var firstSched *time.Time
	if firstJob != nil {
		t := firstJob.ScheduledAt
		firstSched = &t
	}

	first := usable[0]
	dayStartedAtHome := Classify(first.StartLat, first.StartLon, cfg, nil, opts).Category == CategoryHome

	raw := collectRawVisits(usable, cfg, opts)
	consolidated := consolidateVisits(raw, opts.ConsolidationWindow)

	visits := make([]models.OfficeVisit, 0, len(consolidated))
	for i := range consolidated {
		v := &consolidated[i]
		visits = append(visits, classifyVisit(v, i, len(consolidated), cfg, dayStartedAtHome, firstSched, opts))
	}
	return visits
}

// collectRawVisits gathers every stop at the office: the day-start-at-office
// case plus each segment ending inside the office radius.
func collectRawVisits(usable []models.VehicleSegment, cfg *models.TechnicianConfig, opts Options) []rawVisit {
	var raw []rawVisit

	// Vehicle already at the office when the day's first segment started:
	// synthetic visit whose departure is that first start time.
	first := usable[0]
	if geo.WithinRadius(first.StartLat, first.StartLon, cfg.OfficeLat, cfg.OfficeLon, opts.OfficeRadiusFeet) {
		d := first.StartTime
		raw = append(raw, rawVisit{departed: &d, dayStart: true})
	}

	for i := range usable {
		seg := &usable[i]
		if !seg.HasEnd() {
			continue
		}
		if !geo.WithinRadius(*seg.EndLat, *seg.EndLon, cfg.OfficeLat, cfg.OfficeLon, opts.OfficeRadiusFeet) {
			continue
		}
		v := rawVisit{arrived: seg.EndTime}
		if i+1 < len(usable) {
			// Same skew rule as the event builder: a next segment starting
			// before this arrival contributes no departure.
			if d := usable[i+1].StartTime; !d.Before(*seg.EndTime) {
				v.departed = &d
			}
		}
		raw = append(raw, v)
	}

	return raw
}

// consolidateVisits merges a visit into the previous one when its arrival is
// within the consolidation window of the previous visit's effective
// departure. Short shuffle trips inside the parking lot otherwise read as
// separate visits.
func consolidateVisits(raw []rawVisit, window time.Duration) []rawVisit {
	var out []rawVisit
	for _, v := range raw {
		if len(out) > 0 && v.arrived != nil {
			prev := &out[len(out)-1]
			if ed := prev.effectiveDeparture(); ed != nil && !v.arrived.Before(*ed) && v.arrived.Sub(*ed) <= window {
				prev.departed = v.departed
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

func classifyVisit(v *rawVisit, idx, total int, cfg *models.TechnicianConfig, dayStartedAtHome bool, firstSched *time.Time, opts Options) models.OfficeVisit {
	visit := models.OfficeVisit{
		ArrivedAt:  v.arrived,
		DepartedAt: v.departed,
	}

	if v.arrived != nil && v.departed != nil {
		if m := wholeMinutes(v.departed.Sub(*v.arrived)); m > 0 {
			visit.DurationMinutes = m
		}
	}

	switch {
	case idx == 0 && v.dayStart:
		visit.VisitType = models.VisitMorningDeparture

	case v.arrived != nil && firstSched != nil && v.arrived.Before(*firstSched):
		// A pre-first-job office stop is a normal morning departure for
		// office-based technicians, but a take-home technician who left
		// home that morning had no business there.
		if dayStartedAtHome && unnecessaryOfficeArrival(*v.arrived, cfg, dayStartedAtHome, firstSched) {
			visit.VisitType = models.VisitMidDay
			visit.IsUnnecessary = true
		} else {
			visit.VisitType = models.VisitMorningDeparture
		}

	case v.arrived != nil && opts.localHour(*v.arrived) >= opts.EndOfDayHour:
		visit.VisitType = models.VisitEndOfDay

	case idx == total-1 && v.departed == nil:
		// Last visit of the day with no departure: the vehicle parked there.
		visit.VisitType = models.VisitEndOfDay

	default:
		visit.VisitType = models.VisitMidDay
	}

	return visit
}
