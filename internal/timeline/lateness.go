package timeline

import (
	"math"
	"time"
)

// VarianceMinutes is the signed difference between an arrival and its
// scheduled time, rounded to whole minutes. Positive means late.
func VarianceMinutes(arrival, scheduled time.Time) int {
	return int(math.Round(arrival.Sub(scheduled).Seconds() / 60.0))
}

// IsLate reports whether a variance counts as late. Arriving exactly on time
// is not late.
func IsLate(varianceMinutes int) bool {
	return varianceMinutes > 0
}
