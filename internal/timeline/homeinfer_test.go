package timeline

import (
	"fmt"
	"math"
	"testing"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// clusteredStarts builds n day-start points scattered within ~200 ft of a base
// coordinate. 0.0001 degrees of latitude is roughly 36 ft.
func clusteredStarts(n int, lat, lon float64, address string) []models.DayStart {
	starts := make([]models.DayStart, n)
	for i := 0; i < n; i++ {
		starts[i] = models.DayStart{
			Date:    fmt.Sprintf("2025-03-%02d", i+1),
			Lat:     lat + float64(i%3)*0.0001,
			Lon:     lon + float64(i%2)*0.0001,
			Address: address,
		}
	}
	return starts
}

func TestInferHomeHighConfidence(t *testing.T) {
	opts := DefaultOptions()

	starts := clusteredStarts(8, homeLat, homeLon, "12 Maple St")
	starts = append(starts,
		models.DayStart{Date: "2025-03-20", Lat: 41.2, Lon: -75.3, Address: "motel"},
		models.DayStart{Date: "2025-03-21", Lat: 39.9, Lon: -73.1, Address: "parents"},
	)

	s := InferHome(starts, officeLat, officeLon, opts)
	if s == nil {
		t.Fatal("expected a suggestion, got nil")
	}
	if s.Confidence != models.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", s.Confidence)
	}
	if s.SupportingDays != 8 || s.TotalDays != 10 {
		t.Errorf("supporting/total = %d/%d, want 8/10", s.SupportingDays, s.TotalDays)
	}
	if s.Address != "12 Maple St" {
		t.Errorf("address = %q, want most frequent cluster address", s.Address)
	}

	// Suggested coordinate is the arithmetic mean of the 8 clustered points.
	var wantLat, wantLon float64
	for i := 0; i < 8; i++ {
		wantLat += starts[i].Lat
		wantLon += starts[i].Lon
	}
	wantLat /= 8
	wantLon /= 8
	if math.Abs(s.Lat-wantLat) > 1e-9 || math.Abs(s.Lon-wantLon) > 1e-9 {
		t.Errorf("center = (%f, %f), want (%f, %f)", s.Lat, s.Lon, wantLat, wantLon)
	}
}

// Confirming a suggestion must make later days starting at that coordinate
// classify as home rather than unknown.
func TestInferHomeRoundTrip(t *testing.T) {
	opts := DefaultOptions()

	s := InferHome(clusteredStarts(10, homeLat, homeLon, "12 Maple St"), officeLat, officeLon, opts)
	if s == nil {
		t.Fatal("expected a suggestion")
	}

	cfg := officeOnlyConfig()
	cfg.TakesVehicleHome = true
	cfg.HomeLat = &s.Lat
	cfg.HomeLon = &s.Lon

	if c := Classify(homeLat, homeLon, cfg, nil, opts); c.Category != CategoryHome {
		t.Errorf("day start at suggested home classified as %q, want home", c.Category)
	}
}

func TestInferHomeTooFewDays(t *testing.T) {
	opts := DefaultOptions()

	if s := InferHome(clusteredStarts(4, homeLat, homeLon, ""), officeLat, officeLon, opts); s != nil {
		t.Errorf("expected nil for 4 days of data, got %+v", s)
	}
}

func TestInferHomeOfficeStartsDiscarded(t *testing.T) {
	opts := DefaultOptions()

	// 5 days, but 3 start at the office; only 2 non-office days remain.
	starts := clusteredStarts(2, homeLat, homeLon, "")
	starts = append(starts, clusteredStarts(3, officeLat, officeLon, "office")...)

	if s := InferHome(starts, officeLat, officeLon, opts); s != nil {
		t.Errorf("expected nil with only 2 non-office days, got %+v", s)
	}
}

func TestInferHomeMediumConfidence(t *testing.T) {
	opts := DefaultOptions()

	// 6 clustered days out of 10 non-office days: 60% share, 6 members.
	starts := clusteredStarts(6, homeLat, homeLon, "12 Maple St")
	for i := 0; i < 4; i++ {
		starts = append(starts, models.DayStart{
			Date: fmt.Sprintf("2025-03-%02d", 20+i),
			Lat:  41.0 + float64(i), // all far apart
			Lon:  -75.0,
		})
	}

	s := InferHome(starts, officeLat, officeLon, opts)
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.Confidence != models.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", s.Confidence)
	}
}

func TestInferHomeLowConfidence(t *testing.T) {
	opts := DefaultOptions()

	// 3 clustered days out of 10 non-office days: low.
	starts := clusteredStarts(3, homeLat, homeLon, "")
	for i := 0; i < 7; i++ {
		starts = append(starts, models.DayStart{
			Date: fmt.Sprintf("2025-03-%02d", 20+i),
			Lat:  41.0 + float64(i),
			Lon:  -75.0,
		})
	}

	s := InferHome(starts, officeLat, officeLon, opts)
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %q, want low", s.Confidence)
	}
}

func TestInferHomeHighConfidenceNeedsFiveMembers(t *testing.T) {
	opts := DefaultOptions()

	// 4 of 5 non-office days clustered: 80% share but below the 5-member
	// floor, so the suggestion stays low confidence.
	starts := clusteredStarts(4, homeLat, homeLon, "12 Maple St")
	starts = append(starts, models.DayStart{Date: "2025-03-20", Lat: 41.2, Lon: -75.3})

	s := InferHome(starts, officeLat, officeLon, opts)
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %q, want low", s.Confidence)
	}
}

func TestInferHomeNoDominantCluster(t *testing.T) {
	opts := DefaultOptions()

	// Every day somewhere new: largest cluster has 1 member.
	var starts []models.DayStart
	for i := 0; i < 8; i++ {
		starts = append(starts, models.DayStart{
			Date: fmt.Sprintf("2025-03-%02d", i+1),
			Lat:  40.0 + float64(i)*0.5,
			Lon:  -74.0,
		})
	}

	if s := InferHome(starts, officeLat, officeLon, opts); s != nil {
		t.Errorf("expected nil with no cluster of 3+, got %+v", s)
	}
}

func TestInferHomeAddressTieBreak(t *testing.T) {
	opts := DefaultOptions()

	// Two addresses appear 3 times each in the winning cluster; the one
	// reaching its count first (insertion order) wins.
	starts := clusteredStarts(6, homeLat, homeLon, "")
	for i := range starts {
		if i%2 == 0 {
			starts[i].Address = "12 Maple St"
		} else {
			starts[i].Address = "12 Maple Street"
		}
	}

	s := InferHome(starts, officeLat, officeLon, opts)
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.Address != "12 Maple St" {
		t.Errorf("address = %q, want insertion-order winner %q", s.Address, "12 Maple St")
	}
}
