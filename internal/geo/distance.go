package geo

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	// EarthRadiusFeet is the Earth's mean radius in feet
	EarthRadiusFeet = 20902231.0

	// ArrivalRadiusFeet is how close a segment end must be to a job site to
	// count as an arrival (GPS drift plus parking offset)
	ArrivalRadiusFeet = 300.0

	// OfficeRadiusFeet bounds the office geofence
	OfficeRadiusFeet = 500.0

	// HomeRadiusFeet bounds the home geofence
	HomeRadiusFeet = 500.0

	// ClusterRadiusFeet bounds a home-inference cluster
	ClusterRadiusFeet = 500.0
)

// DistanceFeet calculates the great-circle distance between two points in feet
// using the Haversine formula
func DistanceFeet(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusFeet
}

// WithinRadius reports whether the two points are within radiusFeet of each other
func WithinRadius(lat1, lon1, lat2, lon2, radiusFeet float64) bool {
	return DistanceFeet(lat1, lon1, lat2, lon2) <= radiusFeet
}
