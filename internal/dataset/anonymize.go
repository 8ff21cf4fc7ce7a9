package dataset

import (
	"math"
	"strings"

	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// sensitiveColumns is the case-insensitive set of identity-correlated
// column names the anonymizer removes when present.
var sensitiveColumns = []string{"age", "gender", "sex", "time", "exptime", "duration", "date"}

// IsSensitive reports whether a column name belongs to the sensitive set.
func IsSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range sensitiveColumns {
		if lower == s {
			return true
		}
	}
	return false
}

// Anonymize returns a copy of the table with the identity-correlated
// attribute columns removed. Columns already absent are skipped silently;
// every other column and the row count are preserved exactly.
func Anonymize(t *types.Table) *types.Table {
	out := t.Clone()
	out.HasAge = false
	out.HasGender = false
	out.HasDuration = false
	for i := range out.Rows {
		out.Rows[i].Attrs.Age = math.NaN()
		out.Rows[i].Attrs.Gender = ""
		out.Rows[i].Attrs.Duration = math.NaN()
	}
	return out
}

// DroppedColumns reports which sensitive columns the anonymizer would
// remove from the given table, for the run log.
func DroppedColumns(t *types.Table) []string {
	var dropped []string
	if t.HasAge {
		dropped = append(dropped, colAge)
	}
	if t.HasGender {
		dropped = append(dropped, colGender)
	}
	if t.HasDuration {
		dropped = append(dropped, colDuration)
	}
	return dropped
}
