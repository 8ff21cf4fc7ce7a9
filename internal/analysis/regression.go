package analysis

import (
	"math"

	"github.com/Suzuka-Y/B4-2-analysis/internal/dataset"
	"github.com/Suzuka-Y/B4-2-analysis/internal/stats"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// Regression predictor and outcome columns. The five manipulation-target
// questions explain the two overall-impression questions.
var (
	regressionTargets    = []string{"q1", "q2"}
	regressionPredictors = []string{"q3", "q4", "q5", "q6", "q7"}
)

// RegressionOutcome is the fitted model of one outcome variable.
type RegressionOutcome struct {
	Target string
	Fit    stats.OLSResult
	Deg    stats.Degeneracy
}

// RegressionResult bundles both outcome models and the shared
// multicollinearity diagnostics.
type RegressionResult struct {
	Standardized bool
	NSamples     int
	Outcomes     []RegressionOutcome
	VIFs         []stats.VIFResult
	VIFDeg       stats.Degeneracy
}

// Regression fits each outcome against the five predictors with an
// intercept over the non-base rows, dropping rows with any missing value
// among the involved columns. When standardize is set, predictors and
// outcomes are within-subject standardized first. The variance inflation
// factors are computed once over the same predictor set, intercept
// excluded from the output.
func Regression(t *types.Table, standardize bool) RegressionResult {
	res := RegressionResult{Standardized: standardize}

	data := dataset.NonBase(t)
	data = dropIncomplete(data, append(regressionTargets, regressionPredictors...))
	if standardize {
		data = dataset.Standardize(data, append(regressionTargets, regressionPredictors...))
	}
	res.NSamples = len(data.Rows)

	columns := make([][]float64, len(regressionPredictors))
	for j, name := range regressionPredictors {
		q, _ := types.QuestionIndex(name)
		col := make([]float64, len(data.Rows))
		for i, r := range data.Rows {
			col[i] = r.Scores[q]
		}
		columns[j] = col
	}

	for _, target := range regressionTargets {
		q, _ := types.QuestionIndex(target)
		y := make([]float64, len(data.Rows))
		for i, r := range data.Rows {
			y[i] = r.Scores[q]
		}
		outcome := RegressionOutcome{Target: target}
		outcome.Fit, outcome.Deg = stats.FitOLS(y, regressionPredictors, columns)
		res.Outcomes = append(res.Outcomes, outcome)
	}

	res.VIFs, res.VIFDeg = stats.VIFs(regressionPredictors, columns)
	return res
}

// dropIncomplete removes rows with a missing value in any named column.
func dropIncomplete(t *types.Table, columns []string) *types.Table {
	out := &types.Table{HasAge: t.HasAge, HasGender: t.HasGender, HasDuration: t.HasDuration}
	for _, r := range t.Rows {
		complete := true
		for _, name := range columns {
			if q, ok := types.QuestionIndex(name); ok && math.IsNaN(r.Scores[q]) {
				complete = false
				break
			}
		}
		if complete {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}
