package types

// QuestionColumns are the seven rating columns of the tidy table, in the
// order they appear in source files and reports.
var QuestionColumns = []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"}

// QuestionCount is the number of rating columns.
const QuestionCount = 7

// QuestionIndex returns the index of a question column name into
// TidyRow.Scores, and whether the name is a question column at all.
func QuestionIndex(name string) (int, bool) {
	for i, q := range QuestionColumns {
		if q == name {
			return i, true
		}
	}
	return 0, false
}

// UnknownPID is the participant ID used when neither the source file nor
// its filename carries a usable numeric identifier.
const UnknownPID = "Unknown"

// QualitativeBlock holds the four free-text fields extracted from one
// "Set Index" block of a participant's written-answer log. Fields default
// to the empty string when their pattern does not match.
type QualitativeBlock struct {
	Q1Answer string
	Q1Reason string
	Q2Answer string
	Q2Reason string
}

// Attributes are the participant-level fields broadcast to every tidy row
// of that participant. Presence of the optional fields is tracked on the
// Table, not per row.
type Attributes struct {
	PID      string
	Age      float64
	Gender   string
	Duration float64
}

// TidyRow is one observation: one participant rating one stimulus.
// Missing ratings are NaN in Scores.
type TidyRow struct {
	StimulusID string
	Stimulus   Stimulus
	Attrs      Attributes
	Scores     [QuestionCount]float64
	Qual       QualitativeBlock
}

// Table is the canonical long-format table every analysis stage consumes.
// Stages never mutate a Table they receive; they build a new one.
type Table struct {
	Rows []TidyRow

	// Presence of the optional attribute columns, resolved once at load.
	HasAge      bool
	HasGender   bool
	HasDuration bool
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Rows:        make([]TidyRow, len(t.Rows)),
		HasAge:      t.HasAge,
		HasGender:   t.HasGender,
		HasDuration: t.HasDuration,
	}
	copy(out.Rows, t.Rows)
	return out
}

// ParticipantIDs returns the distinct participant IDs in first-seen order.
func (t *Table) ParticipantIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range t.Rows {
		if !seen[r.Attrs.PID] {
			seen[r.Attrs.PID] = true
			ids = append(ids, r.Attrs.PID)
		}
	}
	return ids
}

// Categories returns the distinct category names in first-seen order.
func (t *Table) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, r := range t.Rows {
		if !seen[r.Stimulus.Category] {
			seen[r.Stimulus.Category] = true
			cats = append(cats, r.Stimulus.Category)
		}
	}
	return cats
}

// Levels returns the distinct levels of non-base rows in ascending order.
func (t *Table) Levels() []int {
	seen := make(map[int]bool)
	var levels []int
	for _, r := range t.Rows {
		if r.Stimulus.IsBase() || !r.Stimulus.HasLevel {
			continue
		}
		if !seen[r.Stimulus.Level] {
			seen[r.Stimulus.Level] = true
			levels = append(levels, r.Stimulus.Level)
		}
	}
	for i := 1; i < len(levels); i++ {
		for j := i; j > 0 && levels[j] < levels[j-1]; j-- {
			levels[j], levels[j-1] = levels[j-1], levels[j]
		}
	}
	return levels
}
