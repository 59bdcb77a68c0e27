package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the mean and population standard deviation of a feature
// series.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes mean and population standard deviation of a series.
// The summary of an empty series is zero-valued rather than NaN, so a
// feature with no frames reports 0.0 for both statistics.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	mean := stat.Mean(values, nil)

	// Second central moment is the population variance
	variance := stat.Moment(2, values, nil)
	if variance < 0 {
		variance = 0
	}

	return Summary{
		Mean:   mean,
		StdDev: math.Sqrt(variance),
	}
}
