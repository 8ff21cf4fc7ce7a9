package analysis

import (
	"sort"

	"github.com/Suzuka-Y/B4-2-analysis/internal/stats"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// GenderCount is one gender label with its participant count.
type GenderCount struct {
	Label string
	Count int
}

// DemographicsResult summarizes the participant attributes.
type DemographicsResult struct {
	N           int
	HasAge      bool
	Age         stats.Summary
	HasGender   bool
	Genders     []GenderCount // descending by count, ties alphabetical
	HasDuration bool
	Duration    stats.Summary
}

// Demographics aggregates each participant's first-seen attributes. The
// second return value is false when the table carries no attribute
// columns at all, in which case the report is skipped.
func Demographics(t *types.Table) (DemographicsResult, bool) {
	res := DemographicsResult{
		HasAge:      t.HasAge,
		HasGender:   t.HasGender,
		HasDuration: t.HasDuration,
	}
	if !t.HasAge && !t.HasGender && !t.HasDuration {
		return res, false
	}

	seen := make(map[string]bool)
	var ages, durations []float64
	genderCounts := make(map[string]int)
	for _, r := range t.Rows {
		if seen[r.Attrs.PID] {
			continue
		}
		seen[r.Attrs.PID] = true
		res.N++
		if t.HasAge {
			ages = append(ages, r.Attrs.Age)
		}
		if t.HasGender && r.Attrs.Gender != "" {
			genderCounts[r.Attrs.Gender]++
		}
		if t.HasDuration {
			durations = append(durations, r.Attrs.Duration)
		}
	}

	res.Age = stats.Describe(ages)
	res.Duration = stats.Describe(durations)

	for label, count := range genderCounts {
		res.Genders = append(res.Genders, GenderCount{Label: label, Count: count})
	}
	sort.Slice(res.Genders, func(i, j int) bool {
		if res.Genders[i].Count != res.Genders[j].Count {
			return res.Genders[i].Count > res.Genders[j].Count
		}
		return res.Genders[i].Label < res.Genders[j].Label
	})
	return res, true
}
