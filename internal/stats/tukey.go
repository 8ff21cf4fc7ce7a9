package stats

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PairwiseComparison is one row of a Tukey-Kramer comparison.
type PairwiseComparison struct {
	Group1   string
	Group2   string
	MeanDiff float64 // mean(Group2) - mean(Group1); sign shows direction
	PAdj     float64 // family-wise adjusted p-value
	Reject   bool    // true when PAdj < alpha
}

// TukeyKramer runs a Tukey-Kramer pairwise comparison across all group
// pairs at the given family-wise error rate. Group order is preserved in
// the output; empty groups are dropped. Requires at least two groups and
// residual degrees of freedom, and nonzero pooled within-group variance.
func TukeyKramer(names []string, groups [][]float64, alpha float64) ([]PairwiseComparison, Degeneracy) {
	var keptNames []string
	var kept [][]float64
	total := 0
	for i, g := range groups {
		if len(g) > 0 {
			keptNames = append(keptNames, names[i])
			kept = append(kept, g)
			total += len(g)
		}
	}
	k := len(kept)
	if k < 2 {
		return nil, TooFewGroups
	}
	dfWithin := total - k
	if dfWithin < 1 {
		return nil, TooFewObservations
	}

	ssWithin := 0.0
	means := make([]float64, k)
	for i, g := range kept {
		means[i] = stat.Mean(g, nil)
		for _, v := range g {
			ssWithin += (v - means[i]) * (v - means[i])
		}
	}
	msWithin := ssWithin / float64(dfWithin)
	if msWithin == 0 {
		return nil, ZeroVariance
	}

	var out []PairwiseComparison
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			ni, nj := float64(len(kept[i])), float64(len(kept[j]))
			se := math.Sqrt(msWithin / 2 * (1/ni + 1/nj))
			diff := means[j] - means[i]
			q := math.Abs(diff) / se
			p := 1 - StudentizedRangeCDF(q, k, float64(dfWithin))
			if p < 0 {
				p = 0
			}
			out = append(out, PairwiseComparison{
				Group1:   keptNames[i],
				Group2:   keptNames[j],
				MeanDiff: diff,
				PAdj:     p,
				Reject:   p < alpha,
			})
		}
	}
	return out, OK
}

// StudentizedRangeCDF evaluates P(Q <= q) for the studentized range
// distribution with k groups and df residual degrees of freedom, by
// numerical quadrature of
//
//	P(Q <= q) = ∫ f_df(u) [ k ∫ φ(z) (Φ(z) - Φ(z - q·u))^(k-1) dz ] du
//
// where f_df is the density of sqrt(chi²_df / df).
func StudentizedRangeCDF(q float64, k int, df float64) float64 {
	if q <= 0 {
		return 0
	}

	norm := distuv.UnitNormal

	// P(range of k unit normals <= c).
	rangeCDF := func(c float64) float64 {
		inner := func(z float64) float64 {
			return norm.Prob(z) * math.Pow(norm.CDF(z)-norm.CDF(z-c), float64(k-1))
		}
		return float64(k) * quad.Fixed(inner, -8, 8, 128, nil, 0)
	}

	// Density of S = sqrt(chi²_df / df), evaluated in log space.
	lg, _ := math.Lgamma(df / 2)
	lnC := df/2*math.Log(df) - (df/2-1)*math.Ln2 - lg
	scaleDensity := func(u float64) float64 {
		if u <= 0 {
			return 0
		}
		return math.Exp(lnC + (df-1)*math.Log(u) - df*u*u/2)
	}

	// S concentrates near 1 with spread ~ 1/sqrt(2 df); the widened
	// window keeps small df accurate.
	upper := 1 + 12/math.Sqrt(df)
	outer := func(u float64) float64 {
		return scaleDensity(u) * rangeCDF(q*u)
	}
	p := quad.Fixed(outer, 0, upper, 160, nil, 0)
	return math.Min(p, 1)
}
