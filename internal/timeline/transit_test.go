package timeline

import (
	"testing"

	"github.com/fieldtrace/fieldtrace-backend-go/internal/models"
)

func jobSpanEvents(mealEvents ...models.TimelineEvent) []models.TimelineEvent {
	left := pointEvent(models.EventLeftJob, at(10, 0), jobALat, jobALon, "")
	left.Job = &models.EventJobDetail{JobID: 101, JobNumber: "J-101"}

	arrived := pointEvent(models.EventArrivedJob, at(11, 0), jobBLat, jobBLon, "")
	arrived.Job = &models.EventJobDetail{JobID: 102, JobNumber: "J-102"}

	events := []models.TimelineEvent{left}
	events = append(events, mealEvents...)
	events = append(events, arrived)
	return events
}

func fixedExpected(minutes float64) ExpectedMinutesFunc {
	return func(_, _, _, _ float64) float64 { return minutes }
}

func TestAnalyzeTransitFlagsExcess(t *testing.T) {
	opts := DefaultOptions()

	// 60 elapsed minutes against 15 expected: 45 excess, high severity.
	anomalies := AnalyzeTransit(jobSpanEvents(), fixedExpected(15), opts)
	if len(anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(anomalies))
	}
	a := anomalies[0]
	if a.FromJobNumber != "J-101" || a.ToJobNumber != "J-102" {
		t.Errorf("span %s -> %s, want J-101 -> J-102", a.FromJobNumber, a.ToJobNumber)
	}
	if a.ActualMinutes != 60 || a.ExpectedMinutes != 15 || a.ExcessMinutes != 45 {
		t.Errorf("actual/expected/excess = %d/%d/%d, want 60/15/45", a.ActualMinutes, a.ExpectedMinutes, a.ExcessMinutes)
	}
	if !a.IsSuspicious || a.Severity != models.SeverityHigh {
		t.Errorf("suspicious=%v severity=%q, want true/high", a.IsSuspicious, a.Severity)
	}
}

func TestAnalyzeTransitLowSeverity(t *testing.T) {
	opts := DefaultOptions()

	// 60 elapsed against 50 expected: 10 excess, below the 30-minute
	// high-severity line.
	anomalies := AnalyzeTransit(jobSpanEvents(), fixedExpected(50), opts)
	if len(anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(anomalies))
	}
	if anomalies[0].Severity != models.SeverityLow {
		t.Errorf("severity = %q, want low", anomalies[0].Severity)
	}
}

func TestAnalyzeTransitMealBreakDeducted(t *testing.T) {
	opts := DefaultOptions()

	// A 30-minute meal inside the span: actual transit is 30, not 60.
	events := jobSpanEvents(
		models.TimelineEvent{Kind: models.EventMealStart, Timestamp: at(10, 15)},
		models.TimelineEvent{Kind: models.EventMealEnd, Timestamp: at(10, 45)},
	)

	anomalies := AnalyzeTransit(events, fixedExpected(10), opts)
	if len(anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(anomalies))
	}
	a := anomalies[0]
	if a.MealMinutes != 30 {
		t.Errorf("meal minutes = %d, want 30", a.MealMinutes)
	}
	if a.ActualMinutes != 30 {
		t.Errorf("actual minutes = %d, want 30 (60 elapsed minus 30 meal)", a.ActualMinutes)
	}
	if a.ExcessMinutes != 20 {
		t.Errorf("excess = %d, want 20", a.ExcessMinutes)
	}
}

func TestAnalyzeTransitNoExcess(t *testing.T) {
	opts := DefaultOptions()

	// Expected covers the whole elapsed time; nothing to flag.
	anomalies := AnalyzeTransit(jobSpanEvents(), fixedExpected(60), opts)
	if len(anomalies) != 0 {
		t.Errorf("got %d anomalies, want 0", len(anomalies))
	}
}

func TestAnalyzeTransitUnpairedMealStartIgnored(t *testing.T) {
	opts := DefaultOptions()

	events := jobSpanEvents(
		models.TimelineEvent{Kind: models.EventMealStart, Timestamp: at(10, 15)},
	)

	anomalies := AnalyzeTransit(events, fixedExpected(15), opts)
	if len(anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(anomalies))
	}
	if anomalies[0].MealMinutes != 0 {
		t.Errorf("unpaired meal_start credited %d minutes, want 0", anomalies[0].MealMinutes)
	}
}

func TestAnalyzeTransitNoJobPairs(t *testing.T) {
	opts := DefaultOptions()

	events := []models.TimelineEvent{
		pointEvent(models.EventLeftOffice, at(8, 0), officeLat, officeLon, ""),
		pointEvent(models.EventArrivedUnknown, at(9, 0), 41.0, -75.0, ""),
	}

	if anomalies := AnalyzeTransit(events, fixedExpected(10), opts); len(anomalies) != 0 {
		t.Errorf("got %d anomalies for a day with no job-to-job span, want 0", len(anomalies))
	}
}

func TestAnalyzeTransitNilExpectedFunc(t *testing.T) {
	if anomalies := AnalyzeTransit(jobSpanEvents(), nil, DefaultOptions()); len(anomalies) != 0 {
		t.Errorf("nil expected func should yield no anomalies, got %d", len(anomalies))
	}
}
