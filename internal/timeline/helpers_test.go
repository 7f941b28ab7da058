package timeline

import (
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// Test geography: all points around lower Manhattan. At this latitude one
// degree of latitude is roughly 364,600 ft, so 0.0003 deg is ~110 ft and
// 0.01 deg is ~3,600 ft.
var (
	officeLat, officeLon = 40.7000, -74.0000
	homeLat, homeLon     = 40.7500, -74.0500
	jobALat, jobALon     = 40.7200, -73.9800
	jobBLat, jobBLon     = 40.7350, -73.9600
)

const testDate = "2025-03-10" // a Monday

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func fp(v float64) *float64 { return &v }

func seg(start time.Time, sLat, sLon float64, end time.Time, eLat, eLon float64) models.VehicleSegment {
	e := end
	return models.VehicleSegment{
		TechnicianID: 1,
		Date:         testDate,
		StartTime:    start,
		EndTime:      &e,
		StartLat:     sLat,
		StartLon:     sLon,
		EndLat:       fp(eLat),
		EndLon:       fp(eLon),
		Complete:     true,
	}
}

func openSeg(start time.Time, sLat, sLon float64) models.VehicleSegment {
	return models.VehicleSegment{
		TechnicianID: 1,
		Date:         testDate,
		StartTime:    start,
		StartLat:     sLat,
		StartLon:     sLon,
	}
}

func officeOnlyConfig() *models.TechnicianConfig {
	return &models.TechnicianConfig{
		TechnicianID: 1,
		OfficeLat:    officeLat,
		OfficeLon:    officeLon,
	}
}

func takeHomeConfig() *models.TechnicianConfig {
	cfg := officeOnlyConfig()
	cfg.TakesVehicleHome = true
	cfg.HomeLat = fp(homeLat)
	cfg.HomeLon = fp(homeLon)
	cfg.HomeAddress = "12 Maple St"
	return cfg
}

func jobA(scheduled time.Time) models.Job {
	return models.Job{
		ID:           101,
		TechnicianID: 1,
		Date:         testDate,
		JobNumber:    "J-101",
		Customer:     "Acme Plumbing",
		ScheduledAt:  scheduled,
		SiteLat:      fp(jobALat),
		SiteLon:      fp(jobALon),
		FirstOfDay:   true,
	}
}

func jobB(scheduled time.Time) models.Job {
	return models.Job{
		ID:           102,
		TechnicianID: 1,
		Date:         testDate,
		JobNumber:    "J-102",
		Customer:     "Borough Hardware",
		ScheduledAt:  scheduled,
		SiteLat:      fp(jobBLat),
		SiteLon:      fp(jobBLon),
	}
}

func eventKinds(events []models.TimelineEvent) []models.EventKind {
	kinds := make([]models.EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func findEvent(events []models.TimelineEvent, kind models.EventKind) *models.TimelineEvent {
	for i := range events {
		if events[i].Kind == kind {
			return &events[i]
		}
	}
	return nil
}
