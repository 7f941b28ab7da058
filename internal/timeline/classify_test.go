package timeline

import (
	"testing"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

func TestClassifyJobOutranksOffice(t *testing.T) {
	// A stop simultaneously inside the office geofence and matched to a job
	// must classify as job, never office.
	opts := DefaultOptions()
	cfg := officeOnlyConfig()
	job := jobA(at(9, 0))

	c := Classify(officeLat, officeLon, cfg, &job, opts)
	if c.Category != CategoryJob {
		t.Errorf("matched job inside office radius classified as %q, want job", c.Category)
	}
}

func TestClassifyOffice(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()

	c := Classify(officeLat+0.0003, officeLon, cfg, nil, opts) // ~110 ft from office
	if c.Category != CategoryOffice {
		t.Errorf("point near office classified as %q, want office", c.Category)
	}
}

func TestClassifyOfficeOutranksCustomGeofence(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()
	cfg.Geofences = []models.Geofence{
		{Name: "Depot", Category: "supplier", CenterLat: officeLat, CenterLon: officeLon, RadiusFeet: 1000},
	}

	c := Classify(officeLat, officeLon, cfg, nil, opts)
	if c.Category != CategoryOffice {
		t.Errorf("office point overlapped by geofence classified as %q, want office", c.Category)
	}
}

func TestClassifyCustomGeofenceCircle(t *testing.T) {
	opts := DefaultOptions()
	cfg := takeHomeConfig()
	cfg.Geofences = []models.Geofence{
		{Name: "Supply House", Category: "supplier", CenterLat: jobBLat, CenterLon: jobBLon, RadiusFeet: 400},
	}

	c := Classify(jobBLat, jobBLon, cfg, nil, opts)
	if c.Category != Category("supplier") {
		t.Fatalf("point in custom circle classified as %q, want supplier", c.Category)
	}
	if c.Geofence == nil || c.Geofence.Name != "Supply House" {
		t.Errorf("expected matched geofence Supply House, got %+v", c.Geofence)
	}
}

func TestClassifyCustomGeofencePolygon(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()
	cfg.Geofences = []models.Geofence{
		{
			Name:     "Yard",
			Category: "yard",
			Polygon: []models.Coordinate{
				{Lat: 40.7340, Lon: -73.9610},
				{Lat: 40.7340, Lon: -73.9590},
				{Lat: 40.7360, Lon: -73.9590},
				{Lat: 40.7360, Lon: -73.9610},
			},
		},
	}

	if c := Classify(40.7350, -73.9600, cfg, nil, opts); c.Category != Category("yard") {
		t.Errorf("point inside polygon classified as %q, want yard", c.Category)
	}
	if c := Classify(40.7400, -73.9600, cfg, nil, opts); c.Category != CategoryUnknown {
		t.Errorf("point outside polygon classified as %q, want unknown", c.Category)
	}
}

func TestClassifyDegeneratePolygonNeverMatches(t *testing.T) {
	opts := DefaultOptions()
	cfg := officeOnlyConfig()
	cfg.Geofences = []models.Geofence{
		{Name: "Broken", Category: "yard", Polygon: []models.Coordinate{{Lat: 40.7350, Lon: -73.9600}, {Lat: 40.7351, Lon: -73.9601}}},
	}

	if c := Classify(40.7350, -73.9600, cfg, nil, opts); c.Category != CategoryUnknown {
		t.Errorf("degenerate polygon matched: got %q, want unknown", c.Category)
	}
}

func TestClassifyHome(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name string
		cfg  *models.TechnicianConfig
		want Category
	}{
		{"take-home with home set", takeHomeConfig(), CategoryHome},
		{"no take-home flag", func() *models.TechnicianConfig {
			c := takeHomeConfig()
			c.TakesVehicleHome = false
			return c
		}(), CategoryUnknown},
		{"no home coordinate", func() *models.TechnicianConfig {
			c := takeHomeConfig()
			c.HomeLat, c.HomeLon = nil, nil
			return c
		}(), CategoryUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if c := Classify(homeLat, homeLon, tc.cfg, nil, opts); c.Category != tc.want {
				t.Errorf("classified as %q, want %q", c.Category, tc.want)
			}
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	opts := DefaultOptions()
	cfg := takeHomeConfig()

	if c := Classify(41.0, -75.0, cfg, nil, opts); c.Category != CategoryUnknown {
		t.Errorf("far point classified as %q, want unknown", c.Category)
	}
}
