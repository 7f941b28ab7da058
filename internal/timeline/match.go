package timeline

import (
	"github.com/fieldtrace/fieldtrace-backend-go/internal/geo"
	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// MatchJob associates a segment end coordinate with a scheduled job. The first
// job in slice order whose geocoded site is within the arrival radius wins;
// there is no best-distance tie-break, so the iteration order of jobs is the
// deterministic tie-break. Jobs without a geocoded site are skipped. Returns
// nil when no job qualifies.
//
// A job may match multiple segments over a day (a return visit); a segment
// matches at most one job.
func MatchJob(lat, lon float64, jobs []models.Job, radiusFeet float64) *models.Job {
	for i := range jobs {
		j := &jobs[i]
		if !j.HasSite() {
			continue
		}
		if geo.WithinRadius(lat, lon, *j.SiteLat, *j.SiteLon, radiusFeet) {
			return j
		}
	}
	return nil
}
