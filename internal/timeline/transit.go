package timeline

import (
	"time"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

// ExpectedMinutesFunc supplies the expected direct-route drive time between
// two coordinates. The engine never computes road ETAs itself; the caller
// derives this from straight-line distance and an assumed average speed.
type ExpectedMinutesFunc func(fromLat, fromLon, toLat, toLon float64) float64

// AnalyzeTransit runs the post-pass over a day's ordered event stream and
// flags job-to-job spans whose on-the-clock transit time exceeded the
// expected drive time. Meal breaks punched inside a span do not count as
// transit. The result is advisory, not a hard error.
func AnalyzeTransit(events []models.TimelineEvent, expected ExpectedMinutesFunc, opts Options) []models.TransitAnomaly {
	anomalies := []models.TransitAnomaly{}
	if expected == nil {
		return anomalies
	}

	for i := range events {
		left := &events[i]
		if left.Kind != models.EventLeftJob || left.Job == nil || left.Lat == nil || left.Lon == nil {
			continue
		}

		arrived := nextJobArrival(events, i+1)
		if arrived == nil || arrived.Lat == nil || arrived.Lon == nil {
			continue
		}

		elapsed := wholeMinutes(arrived.Timestamp.Sub(left.Timestamp))
		if elapsed < 0 {
			continue
		}

		meal := mealMinutesWithin(events, left.Timestamp, arrived.Timestamp)
		actual := elapsed - meal
		if actual < 0 {
			actual = 0
		}

		exp := wholeMinutes(time.Duration(expected(*left.Lat, *left.Lon, *arrived.Lat, *arrived.Lon) * float64(time.Minute)))
		excess := actual - exp

		a := models.TransitAnomaly{
			FromJobNumber:   left.Job.JobNumber,
			ToJobNumber:     arrived.Job.JobNumber,
			DepartedAt:      left.Timestamp,
			ArrivedAt:       arrived.Timestamp,
			ExpectedMinutes: exp,
			ActualMinutes:   actual,
			MealMinutes:     meal,
			ExcessMinutes:   excess,
		}

		if excess > opts.TransitExcessThresholdMinutes {
			a.IsSuspicious = true
			if excess >= opts.TransitHighSeverityMinutes {
				a.Severity = models.SeverityHigh
			} else {
				a.Severity = models.SeverityLow
			}
			anomalies = append(anomalies, a)
		}
	}

	return anomalies
}

// nextJobArrival finds the next arrived_job event at or after index start.
func nextJobArrival(events []models.TimelineEvent, start int) *models.TimelineEvent {
	for i := start; i < len(events); i++ {
		if events[i].Kind == models.EventArrivedJob && events[i].Job != nil {
			return &events[i]
		}
	}
	return nil
}

// mealMinutesWithin sums meal_start/meal_end pairs falling inside [from, to].
// An unpaired meal_start inside the span contributes nothing.
func mealMinutesWithin(events []models.TimelineEvent, from, to time.Time) int {
	total := 0
	var mealStart *time.Time

	for i := range events {
		ev := &events[i]
		if ev.Timestamp.Before(from) || ev.Timestamp.After(to) {
			continue
		}
		switch ev.Kind {
		case models.EventMealStart:
			t := ev.Timestamp
			mealStart = &t
		case models.EventMealEnd:
			if mealStart != nil {
				if m := wholeMinutes(ev.Timestamp.Sub(*mealStart)); m > 0 {
					total += m
				}
				mealStart = nil
			}
		}
	}

	return total
}
