package timeline

import (
	"github.com/fieldtrace/fieldtrace-backend-go/internal/geo"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// Home inference minimums
const (
	minDaysAnalyzed   = 5
	minNonOfficeDays  = 3
	minClusterMembers = 3
)

// startCluster groups day-start points. The center stays fixed as the first
// member's coordinate rather than being recomputed; this biases toward early
// days but keeps the clustering deterministic on the same inputs. Intentional
// approximation, not a defect.
type startCluster struct {
	center  geo.Point
	members []models.DayStart
}

// InferHome clusters multi-day GPS starting points to suggest where a
// technician lives. Returns nil when the data cannot support a suggestion
// (fewer than 5 days, fewer than 3 non-office days, or no cluster of 3+
// days) — callers present that as "could not detect", never as an error.
func InferHome(starts []models.DayStart, officeLat, officeLon float64, opts Options) *models.HomeSuggestion {
	if len(starts) < minDaysAnalyzed {
		return nil
	}

	// Days that start at the office tell us nothing about home.
	nonOffice := make([]models.DayStart, 0, len(starts))
	for _, s := range starts {
		if geo.WithinRadius(s.Lat, s.Lon, officeLat, officeLon, opts.OfficeRadiusFeet) {
			continue
		}
		nonOffice = append(nonOffice, s)
	}
	if len(nonOffice) < minNonOfficeDays {
		return nil
	}

	// Greedy single-link clustering: attach each point to the first cluster
	// whose center is within the cluster radius, else start a new cluster.
	var clusters []startCluster
	for _, s := range nonOffice {
		placed := false
		for i := range clusters {
			if geo.WithinRadius(s.Lat, s.Lon, clusters[i].center.Lat, clusters[i].center.Lon, opts.ClusterRadiusFeet) {
				clusters[i].members = append(clusters[i].members, s)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, startCluster{
				center:  geo.Point{Lat: s.Lat, Lon: s.Lon},
				members: []models.DayStart{s},
			})
		}
	}

	// Largest cluster wins; ties go to the earlier cluster.
	winner := &clusters[0]
	for i := range clusters {
		if len(clusters[i].members) > len(winner.members) {
			winner = &clusters[i]
		}
	}

	confidence := clusterConfidence(len(winner.members), len(nonOffice))
	if confidence == "" {
		return nil
	}

	points := make([]geo.Point, len(winner.members))
	for i, m := range winner.members {
		points[i] = geo.Point{Lat: m.Lat, Lon: m.Lon}
	}
	center := geo.Centroid(points)

	return &models.HomeSuggestion{
		Lat:            center.Lat,
		Lon:            center.Lon,
		Address:        mostFrequentAddress(winner.members),
		Confidence:     confidence,
		SupportingDays: len(winner.members),
		TotalDays:      len(starts),
	}
}

// clusterConfidence grades a winning cluster; empty string means the cluster
// is too weak to suggest anything. The grade is driven by the cluster's share
// of non-office days, with a member floor so a 4-of-5 week cannot read as a
// strong signal.
func clusterConfidence(members, nonOfficeDays int) string {
	share := float64(members) / float64(nonOfficeDays)
	switch {
	case members >= 5 && share >= 0.8:
		return models.ConfidenceHigh
	case members >= 5 && share >= 0.5:
		return models.ConfidenceMedium
	case members >= minClusterMembers:
		return models.ConfidenceLow
	default:
		return ""
	}
}

// mostFrequentAddress picks the most common non-empty address string among
// cluster members; ties break by insertion order.
func mostFrequentAddress(members []models.DayStart) string {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, m := range members {
		if m.Address == "" {
			continue
		}
		counts[m.Address]++
		if counts[m.Address] > bestCount {
			best = m.Address
			bestCount = counts[m.Address]
		}
	}
	return best
}
