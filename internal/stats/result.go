// Package stats implements the statistical routines the pipeline needs:
// paired one-sided t-test, one-way ANOVA, Tukey-Kramer pairwise
// comparison, OLS regression, and variance inflation factors. Routines
// report degenerate input through a typed reason instead of a generic
// error, so callers can annotate reports with why a test was skipped.
package stats

// Degeneracy names the reason a routine declined to produce a result.
type Degeneracy int

const (
	// OK means the routine produced a valid result.
	OK Degeneracy = iota
	// TooFewObservations: not enough data points for the requested test.
	TooFewObservations
	// ZeroVariance: the inputs carry no variation to test.
	ZeroVariance
	// TooFewGroups: a between-group test got fewer than two groups.
	TooFewGroups
	// SingularDesign: the regression design matrix is not invertible.
	SingularDesign
)

func (d Degeneracy) String() string {
	switch d {
	case OK:
		return "ok"
	case TooFewObservations:
		return "too few observations"
	case ZeroVariance:
		return "zero variance"
	case TooFewGroups:
		return "fewer than two groups"
	case SingularDesign:
		return "singular design matrix"
	}
	return "unknown"
}

// Valid reports whether the routine produced a usable result.
func (d Degeneracy) Valid() bool { return d == OK }

// Significance tiers used across reports.
const (
	MarkStrong   = "**"   // p < 0.01
	MarkModerate = "*"    // p < 0.05
	MarkNone     = "n.s." // not significant
)

// SignificanceMark returns the tier marker for a p-value.
func SignificanceMark(p float64) string {
	switch {
	case p < 0.01:
		return MarkStrong
	case p < 0.05:
		return MarkModerate
	default:
		return MarkNone
	}
}
