package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics reported per group.
type Summary struct {
	Count int
	Mean  float64
	SD    float64
	Min   float64
	Max   float64
}

// Describe computes descriptive statistics over the given values. NaN
// entries are skipped. An empty input yields a zero Count with NaN moments.
func Describe(values []float64) Summary {
	s := Summary{Mean: math.NaN(), SD: math.NaN(), Min: math.NaN(), Max: math.NaN()}

	var clean []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	s.Count = len(clean)
	if s.Count == 0 {
		return s
	}

	s.Mean = stat.Mean(clean, nil)
	s.Min, s.Max = clean[0], clean[0]
	for _, v := range clean {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if s.Count >= 2 {
		s.SD = stat.StdDev(clean, nil)
	}
	return s
}
