package analysis

import (
	"math"
	"sort"

	"github.com/Suzuka-Y/B4-2-analysis/internal/stats"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// strengthAlpha is the significance level that triggers the post-hoc
// comparison and its family-wise error rate.
const strengthAlpha = 0.05

// strengthQuestion is the primary discomfort measure whose change the
// strength check compares across categories.
const strengthQuestion = "q1"

// StrengthGroup holds the delta distribution of one category.
type StrengthGroup struct {
	Category string
	Stats    stats.Summary
	Deltas   []float64
}

// StrengthResult is the homogeneity check of one level (or of the pooled
// table). PostHoc is populated only when the ANOVA rejects homogeneity
// and the comparison itself did not degenerate.
type StrengthResult struct {
	Level      int // 0 when pooled
	Pooled     bool
	Groups     []StrengthGroup
	Anova      stats.AnovaResult
	Deg        stats.Degeneracy
	PostHoc    []stats.PairwiseComparison
	PostHocDeg stats.Degeneracy
}

// StrengthCheck tests whether the manipulations shift the primary
// discomfort measure by comparable amounts. It computes each
// participant's delta (standardized stimulus score minus their base
// score, inner join on participant) and runs a one-way ANOVA across
// categories, per level or pooled. A significant ANOVA triggers the
// Tukey-Kramer comparison scoped to that grouping.
func StrengthCheck(std *types.Table, pool bool) []StrengthResult {
	q, _ := types.QuestionIndex(strengthQuestion)

	if pool {
		return []StrengthResult{checkGrouping(std, q, 0, true)}
	}

	levels := std.Levels()
	out := make([]StrengthResult, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, checkGrouping(std, q, lvl, false))
	}
	return out
}

// checkGrouping runs the ANOVA and, when warranted, the post-hoc
// comparison over the deltas of one level (or all levels when pooled).
func checkGrouping(std *types.Table, q, level int, pooled bool) StrengthResult {
	res := StrengthResult{Level: level, Pooled: pooled}

	deltas := deltasByCategory(std, q, level, pooled)
	categories := make([]string, 0, len(deltas))
	for c := range deltas {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	groups := make([][]float64, 0, len(categories))
	for _, c := range categories {
		res.Groups = append(res.Groups, StrengthGroup{
			Category: c,
			Stats:    stats.Describe(deltas[c]),
			Deltas:   deltas[c],
		})
		groups = append(groups, deltas[c])
	}

	res.Anova, res.Deg = stats.OneWay(groups)
	if res.Deg.Valid() && res.Anova.P < strengthAlpha {
		res.PostHoc, res.PostHocDeg = stats.TukeyKramer(categories, groups, strengthAlpha)
	}
	return res
}

// deltasByCategory computes per-participant deltas against base for the
// given question, restricted to one level unless pooled. Participants
// without a base observation contribute nothing (inner-join semantics).
func deltasByCategory(std *types.Table, q, level int, pooled bool) map[string][]float64 {
	baseByPID := make(map[string]float64)
	for _, r := range std.Rows {
		if r.Stimulus.IsBase() && !math.IsNaN(r.Scores[q]) {
			baseByPID[r.Attrs.PID] = r.Scores[q]
		}
	}

	deltas := make(map[string][]float64)
	for _, r := range std.Rows {
		if r.Stimulus.IsBase() || math.IsNaN(r.Scores[q]) {
			continue
		}
		if !pooled && (!r.Stimulus.HasLevel || r.Stimulus.Level != level) {
			continue
		}
		b, ok := baseByPID[r.Attrs.PID]
		if !ok {
			continue
		}
		c := r.Stimulus.Category
		deltas[c] = append(deltas[c], r.Scores[q]-b)
	}
	return deltas
}
