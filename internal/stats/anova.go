package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// AnovaResult is the outcome of a one-way analysis of variance.
type AnovaResult struct {
	F         float64
	P         float64
	DFBetween int
	DFWithin  int
	MSWithin  float64 // pooled within-group variance, reused by Tukey-Kramer
}

// OneWay runs a one-way ANOVA over the given groups. Groups with no
// observations are ignored. Fewer than two non-empty groups is a
// TooFewGroups degeneracy; no residual degrees of freedom is
// TooFewObservations; identical values everywhere is ZeroVariance.
func OneWay(groups [][]float64) (AnovaResult, Degeneracy) {
	var r AnovaResult

	var kept [][]float64
	total := 0
	for _, g := range groups {
		if len(g) > 0 {
			kept = append(kept, g)
			total += len(g)
		}
	}
	k := len(kept)
	if k < 2 {
		return r, TooFewGroups
	}
	if total <= k {
		return r, TooFewObservations
	}

	var all []float64
	for _, g := range kept {
		all = append(all, g...)
	}
	grand := stat.Mean(all, nil)

	ssBetween, ssWithin := 0.0, 0.0
	for _, g := range kept {
		m := stat.Mean(g, nil)
		d := m - grand
		ssBetween += float64(len(g)) * d * d
		for _, v := range g {
			ssWithin += (v - m) * (v - m)
		}
	}

	r.DFBetween = k - 1
	r.DFWithin = total - k
	r.MSWithin = ssWithin / float64(r.DFWithin)
	msBetween := ssBetween / float64(r.DFBetween)

	if r.MSWithin == 0 {
		if ssBetween == 0 {
			return r, ZeroVariance
		}
		r.F = math.Inf(1)
		r.P = 0
		return r, OK
	}

	r.F = msBetween / r.MSWithin
	dist := distuv.F{D1: float64(r.DFBetween), D2: float64(r.DFWithin)}
	r.P = dist.Survival(r.F)
	return r, OK
}
