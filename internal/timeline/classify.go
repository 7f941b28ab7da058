package timeline

import (
	"github.com/fieldtrace/fieldtrace-backend-go/internal/geo"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// Category is the semantic type of a stop location
type Category string

// Fixed categories; a custom geofence contributes its own category string
const (
	CategoryJob     Category = "job"
	CategoryOffice  Category = "office"
	CategoryHome    Category = "home"
	CategoryUnknown Category = "unknown"
)

// Classification is the result of classifying one coordinate. Geofence is
// non-nil only when a custom labeled geofence matched.
type Classification struct {
	Category Category
	Geofence *models.Geofence
}

// Classify determines what a coordinate represents for a technician. The
// priority order is deliberate policy and short-circuits on first match:
// a matched job outranks everything (a geofence overlapping a job site must
// not mask the job attribution), office outranks home and custom fences
// because it is an unambiguous organizational anchor, and home only applies
// to take-home technicians with a confirmed home coordinate.
//
// matchedJob is the job already resolved for this stop via MatchJob, if any;
// it is only ever set for segment end points.
func Classify(lat, lon float64, cfg *models.TechnicianConfig, matchedJob *models.Job, opts Options) Classification {
	if matchedJob != nil {
		return Classification{Category: CategoryJob}
	}

	if geo.WithinRadius(lat, lon, cfg.OfficeLat, cfg.OfficeLon, opts.OfficeRadiusFeet) {
		return Classification{Category: CategoryOffice}
	}

	for i := range cfg.Geofences {
		g := &cfg.Geofences[i]
		if geofenceContains(g, lat, lon) {
			return Classification{Category: Category(g.Category), Geofence: g}
		}
	}

	if cfg.TakesVehicleHome && cfg.HasHome() &&
		geo.WithinRadius(lat, lon, *cfg.HomeLat, *cfg.HomeLon, opts.HomeRadiusFeet) {
		return Classification{Category: CategoryHome}
	}

	return Classification{Category: CategoryUnknown}
}

// geofenceContains tests a point against a circular or polygonal geofence.
func geofenceContains(g *models.Geofence, lat, lon float64) bool {
	if len(g.Polygon) > 0 {
		poly := make([]geo.Point, len(g.Polygon))
		for i, v := range g.Polygon {
			poly[i] = geo.Point{Lat: v.Lat, Lon: v.Lon}
		}
		return geo.PointInPolygon(geo.Point{Lat: lat, Lon: lon}, poly)
	}
	if g.RadiusFeet > 0 {
		return geo.WithinRadius(lat, lon, g.CenterLat, g.CenterLon, g.RadiusFeet)
	}
	return false
}
