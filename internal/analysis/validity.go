// Package analysis runs the experiment's statistical checks over the tidy
// table: manipulation validity, strength homogeneity with post-hoc
// comparison, multiple regression with multicollinearity diagnostics, and
// participant demographics.
package analysis

import (
	"math"
	"sort"

	"github.com/Suzuka-Y/B4-2-analysis/internal/stats"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// ValidityRow is the manipulation-check outcome for one category.
type ValidityRow struct {
	Category string
	TargetQ  string
	Result   stats.TTestResult
	Deg      stats.Degeneracy
	Sig      string
}

// Validity runs the manipulation check: for each category, the
// participant-mean score at that condition is compared against the same
// participant's base score with a paired one-sided t-test (stimulus >
// base). Participants lacking either observation are excluded by the
// inner join. Categories with no joined pairs produce no row; degenerate
// tests produce a placeholder row.
func Validity(t *types.Table, targets map[string]string) []ValidityRow {
	categories := make([]string, 0, len(targets))
	for c := range targets {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var out []ValidityRow
	for _, category := range categories {
		q, ok := types.QuestionIndex(targets[category])
		if !ok {
			continue
		}
		stim, base := joinedScores(t, category, q)
		if len(stim) == 0 {
			continue
		}

		row := ValidityRow{Category: category, TargetQ: targets[category]}
		row.Result, row.Deg = stats.PairedOneSided(stim, base)
		if row.Deg.Valid() {
			row.Sig = stats.SignificanceMark(row.Result.P)
		} else {
			row.Sig = "-"
		}
		out = append(out, row)
	}
	return out
}

// joinedScores inner-joins per-participant mean stimulus scores with base
// scores on participant ID for one question column.
func joinedScores(t *types.Table, category string, q int) (stim, base []float64) {
	baseByPID := make(map[string]float64)
	for _, r := range t.Rows {
		if r.Stimulus.IsBase() && !math.IsNaN(r.Scores[q]) {
			baseByPID[r.Attrs.PID] = r.Scores[q]
		}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, r := range t.Rows {
		if r.Stimulus.Category != category || math.IsNaN(r.Scores[q]) {
			continue
		}
		if counts[r.Attrs.PID] == 0 {
			order = append(order, r.Attrs.PID)
		}
		sums[r.Attrs.PID] += r.Scores[q]
		counts[r.Attrs.PID]++
	}

	for _, pid := range order {
		b, ok := baseByPID[pid]
		if !ok {
			continue
		}
		stim = append(stim, sums[pid]/float64(counts[pid]))
		base = append(base, b)
	}
	return stim, base
}
