package dataset

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// Standardize replaces the given question columns with within-subject
// z-scores: rows are grouped by participant and each column becomes
// (value - group mean) / group sample standard deviation. A group with
// fewer than two observed values or zero variance is only mean-centered,
// so constant responses come out as exact zeros instead of dividing by
// zero. Missing values stay missing.
func Standardize(t *types.Table, columns []string) *types.Table {
	out := t.Clone()

	byPID := make(map[string][]int)
	for i, r := range out.Rows {
		byPID[r.Attrs.PID] = append(byPID[r.Attrs.PID], i)
	}

	for _, col := range columns {
		q, ok := types.QuestionIndex(col)
		if !ok {
			continue
		}
		for _, rows := range byPID {
			standardizeGroup(out.Rows, rows, q)
		}
	}
	return out
}

// standardizeGroup transforms one participant's values of one column.
func standardizeGroup(rows []types.TidyRow, idx []int, q int) {
	var values []float64
	for _, i := range idx {
		if v := rows[i].Scores[q]; !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return
	}

	mean := stat.Mean(values, nil)
	sd := 0.0
	if len(values) >= 2 {
		sd = stat.StdDev(values, nil)
	}

	for _, i := range idx {
		v := rows[i].Scores[q]
		if math.IsNaN(v) {
			continue
		}
		if sd == 0 {
			rows[i].Scores[q] = v - mean
			continue
		}
		rows[i].Scores[q] = (v - mean) / sd
	}
}
