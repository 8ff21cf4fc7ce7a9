package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult is the outcome of a paired one-sided t-test.
type TTestResult struct {
	N        int
	MeanStim float64
	MeanBase float64
	Diff     float64 // MeanStim - MeanBase
	T        float64
	P        float64 // one-sided: alternative stim > base
	DF       int
}

// PairedOneSided runs a paired t-test of the alternative hypothesis
// mean(stim) > mean(base). The slices must be position-paired per
// participant; the caller is responsible for inner-join semantics.
// Constant nonzero differences yield an infinite statistic with an exact
// 0 or 1 p-value, matching the behavior of standard implementations;
// constant zero differences are a ZeroVariance degeneracy.
func PairedOneSided(stim, base []float64) (TTestResult, Degeneracy) {
	var r TTestResult
	if len(stim) != len(base) || len(stim) < 2 {
		return r, TooFewObservations
	}

	n := len(stim)
	diffs := make([]float64, n)
	for i := range stim {
		diffs[i] = stim[i] - base[i]
	}

	r.N = n
	r.DF = n - 1
	r.MeanStim = stat.Mean(stim, nil)
	r.MeanBase = stat.Mean(base, nil)
	r.Diff = r.MeanStim - r.MeanBase

	meanD := stat.Mean(diffs, nil)
	sdD := stat.StdDev(diffs, nil)
	if sdD == 0 {
		if meanD == 0 {
			return r, ZeroVariance
		}
		r.T = math.Inf(1)
		r.P = 0
		if meanD < 0 {
			r.T = math.Inf(-1)
			r.P = 1
		}
		return r, OK
	}

	r.T = meanD / (sdD / math.Sqrt(float64(n)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.DF)}
	r.P = dist.Survival(r.T)
	return r, OK
}
