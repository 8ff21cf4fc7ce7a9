package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// Fixed non-question column names of the persisted tidy table.
const (
	colStimulusID = "Stimulus_ID"
	colPID        = "PID"
	colAge        = "age"
	colGender     = "sex"
	colDuration   = "expTime"
	colCategory   = "Category"
	colLevel      = "Level"
	colQ1Answer   = "Q1_Answer"
	colQ1Reason   = "Q1_Reason"
	colQ2Answer   = "Q2_Answer"
	colQ2Reason   = "Q2_Reason"
)

// header returns the column order of the persisted table. Optional
// attribute columns appear only when the table carries them.
func header(t *types.Table) []string {
	h := []string{colStimulusID}
	h = append(h, types.QuestionColumns...)
	h = append(h, colPID)
	if t.HasAge {
		h = append(h, colAge)
	}
	if t.HasGender {
		h = append(h, colGender)
	}
	if t.HasDuration {
		h = append(h, colDuration)
	}
	return append(h, colCategory, colLevel, colQ1Answer, colQ1Reason, colQ2Answer, colQ2Reason)
}

// WriteCSV persists the table. Missing numeric values become empty cells.
func WriteCSV(t *types.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCSVTo(f, t)
}

// WriteCSVTo serializes the table in the same format as WriteCSV.
func WriteCSVTo(out io.Writer, t *types.Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(header(t)); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{r.StimulusID}
		for _, s := range r.Scores {
			rec = append(rec, formatFloat(s))
		}
		rec = append(rec, r.Attrs.PID)
		if t.HasAge {
			rec = append(rec, formatFloat(r.Attrs.Age))
		}
		if t.HasGender {
			rec = append(rec, r.Attrs.Gender)
		}
		if t.HasDuration {
			rec = append(rec, formatFloat(r.Attrs.Duration))
		}
		level := ""
		if r.Stimulus.HasLevel {
			level = strconv.Itoa(r.Stimulus.Level)
		}
		rec = append(rec, r.Stimulus.Category, level,
			r.Qual.Q1Answer, r.Qual.Q1Reason, r.Qual.Q2Answer, r.Qual.Q2Reason)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a table previously written by WriteCSV.
func ReadCSV(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	t := &types.Table{}
	_, t.HasAge = col[colAge]
	_, t.HasGender = col[colGender]
	_, t.HasDuration = col[colDuration]

	cell := func(rec []string, name string) string {
		if i, ok := col[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	for _, rec := range records[1:] {
		row := types.TidyRow{
			StimulusID: cell(rec, colStimulusID),
			Attrs: types.Attributes{
				PID:      cell(rec, colPID),
				Age:      parseFloat(cell(rec, colAge)),
				Gender:   cell(rec, colGender),
				Duration: parseFloat(cell(rec, colDuration)),
			},
			Qual: types.QualitativeBlock{
				Q1Answer: cell(rec, colQ1Answer),
				Q1Reason: cell(rec, colQ1Reason),
				Q2Answer: cell(rec, colQ2Answer),
				Q2Reason: cell(rec, colQ2Reason),
			},
		}
		for i := range types.QuestionColumns {
			row.Scores[i] = parseFloat(cell(rec, types.QuestionColumns[i]))
		}
		row.Stimulus = rebuildStimulus(cell(rec, colCategory), cell(rec, colLevel))
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// rebuildStimulus reconstructs the parsed stimulus from its persisted
// category and level cells.
func rebuildStimulus(category, level string) types.Stimulus {
	s := types.Stimulus{Kind: types.StimulusUnknown, Category: category}
	if lvl, err := strconv.Atoi(level); err == nil {
		s.Level = lvl
		s.HasLevel = true
		s.Kind = types.StimulusManipulation
	}
	if category == types.BaseCategory {
		s.Kind = types.StimulusBase
	}
	return s
}

// FilterKeepLevel returns a table holding base rows plus stimulus rows at
// the given level. Level 0 keeps everything.
func FilterKeepLevel(t *types.Table, level int) *types.Table {
	if level == 0 {
		return t.Clone()
	}
	out := &types.Table{HasAge: t.HasAge, HasGender: t.HasGender, HasDuration: t.HasDuration}
	for _, r := range t.Rows {
		if r.Stimulus.IsBase() || (r.Stimulus.HasLevel && r.Stimulus.Level == level) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// NonBase returns a table with the base rows removed.
func NonBase(t *types.Table) *types.Table {
	out := &types.Table{HasAge: t.HasAge, HasGender: t.HasGender, HasDuration: t.HasDuration}
	for _, r := range t.Rows {
		if !r.Stimulus.IsBase() {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// ReplaceSentinel returns a table with every occurrence of the missing
// code in one question column replaced. Used for the no-answer code the
// response form emits; applied by the orchestrator after anonymization.
func ReplaceSentinel(t *types.Table, column string, missing, replacement float64) *types.Table {
	idx, ok := types.QuestionIndex(column)
	if !ok {
		return t.Clone()
	}
	out := t.Clone()
	for i := range out.Rows {
		if out.Rows[i].Scores[idx] == missing {
			out.Rows[i].Scores[idx] = replacement
		}
	}
	return out
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
