package sample

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Sample is an ordered sequence of scalar measurements extracted from one
// column across the matching year files. Duplicates are allowed; order is
// irrelevant for the downstream math but preserved for fingerprinting.
// After ingestion it contains no missing-value sentinels and no non-finite
// values.
type Sample []float64

// Len returns the number of values
func (s Sample) Len() int {
	return len(s)
}

// IsEmpty checks whether the sample has no values
func (s Sample) IsEmpty() bool {
	return len(s) == 0
}

// Clean returns a copy with all non-finite values removed, preserving order
func (s Sample) Clean() Sample {
	cleaned := make(Sample, 0, len(s))
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		cleaned = append(cleaned, v)
	}
	return cleaned
}

// Sorted returns an ascending copy; the receiver is not mutated
func (s Sample) Sorted() Sample {
	sorted := make(Sample, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)
	return sorted
}

func (s Sample) data() stats.Float64Data {
	return stats.Float64Data(s)
}

// Mean returns the arithmetic mean, or 0 for an empty sample
func (s Sample) Mean() float64 {
	mean, _ := stats.Mean(s.data())
	return mean
}

// StdDev returns the standard deviation (population formula, matching the
// convention of the charting pipeline), or 0 for an empty sample
func (s Sample) StdDev() float64 {
	sd, _ := stats.StandardDeviation(s.data())
	return sd
}

// Min returns the smallest value, or 0 for an empty sample
func (s Sample) Min() float64 {
	min, _ := stats.Min(s.data())
	return min
}

// Max returns the largest value, or 0 for an empty sample
func (s Sample) Max() float64 {
	max, _ := stats.Max(s.data())
	return max
}

// Median returns the middle value, or 0 for an empty sample
func (s Sample) Median() float64 {
	median, _ := stats.Median(s.data())
	return median
}

// AllPositive reports whether every value is strictly greater than zero.
// Gamma and Burr fits require this: their support is (0, inf).
func (s Sample) AllPositive() bool {
	for _, v := range s {
		if v <= 0 {
			return false
		}
	}
	return true
}

// Summary captures the descriptive statistics consumed by reports
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summarize computes the descriptive statistics for a non-empty sample
func (s Sample) Summarize() (Summary, error) {
	summary := Summary{N: len(s)}

	mean, err := stats.Mean(s.data())
	if err != nil {
		return summary, err
	}

	sd, err := stats.StandardDeviation(s.data())
	if err != nil {
		return summary, err
	}

	min, err := stats.Min(s.data())
	if err != nil {
		return summary, err
	}

	max, err := stats.Max(s.data())
	if err != nil {
		return summary, err
	}

	median, err := stats.Median(s.data())
	if err != nil {
		return summary, err
	}

	summary.Mean = mean
	summary.StdDev = sd
	summary.Min = min
	summary.Max = max
	summary.Median = median
	return summary, nil
}
