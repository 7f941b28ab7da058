package timeline

import (
	"testing"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

func TestDetectOfficeVisitsConsolidation(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()

	tests := []struct {
		name       string
		gapMinutes int
		wantVisits int
	}{
		{"ten-minute gap merges", 10, 1},
		{"twenty-minute gap stays separate", 20, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrive at the office at 10:00, shuffle out at 10:05, arrive
			// again gapMinutes after that departure.
			segments := []models.VehicleSegment{
				seg(at(9, 0), jobALat, jobALon, at(10, 0), officeLat, officeLon),
				seg(at(10, 5), officeLat, officeLon, at(10, 5+tc.gapMinutes), officeLat, officeLon),
				seg(at(14, 0), officeLat, officeLon, at(14, 30), jobALat, jobALon),
			}

			visits := DetectOfficeVisits(segments, nil, cfg, opts)
			if len(visits) != tc.wantVisits {
				t.Fatalf("got %d visits, want %d: %+v", len(visits), tc.wantVisits, visits)
			}
			if tc.wantVisits == 1 {
				v := visits[0]
				if v.ArrivedAt == nil || !v.ArrivedAt.Equal(at(10, 0)) {
					t.Errorf("merged visit arrival = %v, want 10:00", v.ArrivedAt)
				}
				if v.DepartedAt == nil || !v.DepartedAt.Equal(at(14, 0)) {
					t.Errorf("merged visit departure = %v, want 14:00 (extended by the merge)", v.DepartedAt)
				}
			}
		})
	}
}

func TestDetectOfficeVisitsDayStartSynthetic(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()

	segments := []models.VehicleSegment{
		seg(at(8, 0), officeLat, officeLon, at(8, 40), jobALat, jobALon),
	}

	visits := DetectOfficeVisits(segments, []models.Job{jobA(at(9, 0))}, cfg, opts)
	if len(visits) != 1 {
		t.Fatalf("got %d visits, want 1", len(visits))
	}
	v := visits[0]
	if v.ArrivedAt != nil {
		t.Errorf("synthetic day-start visit should have nil arrival, got %v", v.ArrivedAt)
	}
	if v.DepartedAt == nil || !v.DepartedAt.Equal(at(8, 0)) {
		t.Errorf("synthetic visit departure = %v, want 08:00", v.DepartedAt)
	}
	if v.VisitType != models.VisitMorningDeparture {
		t.Errorf("synthetic visit type = %q, want morning_departure", v.VisitType)
	}
}

func TestDetectOfficeVisitsMorningBeforeFirstJob(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()

	// Office-based technician: somewhere else overnight, reaches the office
	// before the first job. That is a normal morning departure.
	segments := []models.VehicleSegment{
		seg(at(7, 0), 41.0, -75.0, at(7, 40), officeLat, officeLon),
		seg(at(8, 30), officeLat, officeLon, at(8, 55), jobALat, jobALon),
	}

	visits := DetectOfficeVisits(segments, []models.Job{jobA(at(9, 0))}, cfg, opts)
	if len(visits) != 1 {
		t.Fatalf("got %d visits, want 1", len(visits))
	}
	if visits[0].VisitType != models.VisitMorningDeparture {
		t.Errorf("visit type = %q, want morning_departure", visits[0].VisitType)
	}
	if visits[0].IsUnnecessary {
		t.Error("office-based morning stop should not be unnecessary")
	}
}

func TestDetectOfficeVisitsUnnecessaryForTakeHome(t *testing.T) {
	opts := DefaultOptions()
	cfg := takeHomeConfig()

	// Take-home technician leaves home, detours through the office before
	// the first job: reclassified as a flagged mid-day visit.
	segments := []models.VehicleSegment{
		seg(at(7, 0), homeLat, homeLon, at(7, 30), officeLat, officeLon),
		seg(at(8, 20), officeLat, officeLon, at(8, 55), jobALat, jobALon),
	}

	visits := DetectOfficeVisits(segments, []models.Job{jobA(at(9, 0))}, cfg, opts)
	if len(visits) != 1 {
		t.Fatalf("got %d visits, want 1", len(visits))
	}
	v := visits[0]
	if v.VisitType != models.VisitMidDay {
		t.Errorf("visit type = %q, want mid_day_visit", v.VisitType)
	}
	if !v.IsUnnecessary {
		t.Error("expected the visit flagged unnecessary")
	}
}

func TestDetectOfficeVisitsEndOfDay(t *testing.T) {
	opts := DefaultOptions() // office wall clock is UTC-5

	tests := []struct {
		name     string
		arriveAt [2]int // UTC hour, minute
		want     string
	}{
		{"arrival 17:45 local", [2]int{22, 45}, models.VisitEndOfDay},
		{"arrival 14:00 local", [2]int{19, 0}, models.VisitEndOfDay}, // no departure, last visit
	}

	cfg := officeOnlyConfig()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			segments := []models.VehicleSegment{
				seg(at(13, 0), jobALat, jobALon, at(tc.arriveAt[0], tc.arriveAt[1]), officeLat, officeLon),
			}
			visits := DetectOfficeVisits(segments, []models.Job{jobA(at(12, 0))}, cfg, opts)
			if len(visits) != 1 {
				t.Fatalf("got %d visits, want 1", len(visits))
			}
			if visits[0].VisitType != tc.want {
				t.Errorf("visit type = %q, want %q", visits[0].VisitType, tc.want)
			}
		})
	}
}

func TestDetectOfficeVisitsMidDay(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()

	// Restock run between jobs in the early afternoon.
	segments := []models.VehicleSegment{
		seg(at(12, 0), jobALat, jobALon, at(12, 30), officeLat, officeLon),
		seg(at(13, 10), officeLat, officeLon, at(13, 40), jobBLat, jobBLon),
	}

	visits := DetectOfficeVisits(segments, []models.Job{jobA(at(9, 0))}, cfg, opts)
	if len(visits) != 1 {
		t.Fatalf("got %d visits, want 1", len(visits))
	}
	v := visits[0]
	if v.VisitType != models.VisitMidDay {
		t.Errorf("visit type = %q, want mid_day_visit", v.VisitType)
	}
	if v.DurationMinutes != 40 {
		t.Errorf("duration = %d, want 40", v.DurationMinutes)
	}
}

func TestDetectOfficeVisitsNoSegments(t *testing.T) {
	visits := DetectOfficeVisits(nil, nil, officeOnlyConfig(), DefaultOptions())
	if len(visits) != 0 {
		t.Errorf("expected no visits, got %d", len(visits))
	}
}

func TestDetectOfficeVisitsClockSkewDropsDeparture(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()

	// The segment after the office arrival claims to start five minutes
	// before it. The visit keeps its arrival and drops the departure.
	segments := []models.VehicleSegment{
		seg(at(9, 0), jobALat, jobALon, at(10, 0), officeLat, officeLon),
		seg(at(9, 55), officeLat, officeLon, at(10, 30), jobALat, jobALon),
	}

	visits := DetectOfficeVisits(segments, nil, cfg, opts)
	if len(visits) != 1 {
		t.Fatalf("got %d visits, want 1: %+v", len(visits), visits)
	}
	v := visits[0]
	if v.ArrivedAt == nil || !v.ArrivedAt.Equal(at(10, 0)) {
		t.Errorf("arrival = %v, want 10:00", v.ArrivedAt)
	}
	if v.DepartedAt != nil {
		t.Errorf("departure = %v, want nil for a skewed next segment", v.DepartedAt)
	}
	if v.DurationMinutes != 0 {
		t.Errorf("duration = %d, want 0 with no departure", v.DurationMinutes)
	}
}
