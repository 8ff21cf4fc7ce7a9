// Package dataset builds, persists, and transforms the tidy table: the
// long-format table with one row per participant and stimulus that every
// analysis stage consumes.
package dataset

import (
	"errors"
	"fmt"

	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// ErrNoData is returned when no quantitative source file could be parsed.
// It is fatal to the run: every downstream stage needs the tidy table.
var ErrNoData = errors.New("no usable quantitative data")

// errQuestionsColumn marks a source file without the required header.
var errQuestionsColumn = errors.New("required column \"questions\" not found")

// questionsColumn names the header cell of the question-label column in
// wide-format source files.
const questionsColumn = "questions"

// orderColumn is a presentation-order column some logger versions emit.
// It is dropped; nothing downstream consumes it.
const orderColumn = "SetOrder"

// columnSchema is the result of resolving one source file's header against
// the configured attribute-name lists. Index -1 means the column is absent.
type columnSchema struct {
	questions int
	pid       int
	age       int
	gender    int
	duration  int
	stimuli   []int // column indices holding one stimulus each
}

// resolveSchema locates the questions column, the participant attribute
// columns, and the stimulus columns in a header. The questions column is
// required; attribute columns are optional and resolved through the
// accepted-name lists in the schema config.
func resolveSchema(header []string, schema types.SchemaConfig) (columnSchema, error) {
	cs := columnSchema{questions: -1, pid: -1, age: -1, gender: -1, duration: -1}

	cs.questions = findColumn(header, []string{questionsColumn})
	if cs.questions == -1 {
		return cs, fmt.Errorf("%w in header %v", errQuestionsColumn, header)
	}
	cs.pid = findColumn(header, schema.PID)
	cs.age = findColumn(header, schema.Age)
	cs.gender = findColumn(header, schema.Gender)
	cs.duration = findColumn(header, schema.Duration)

	reserved := map[int]bool{
		cs.questions: true, cs.pid: true, cs.age: true,
		cs.gender: true, cs.duration: true,
	}
	for i, name := range header {
		if reserved[i] || name == orderColumn {
			continue
		}
		cs.stimuli = append(cs.stimuli, i)
	}
	return cs, nil
}

// findColumn returns the index of the first header cell matching any of
// the accepted names, or -1.
func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, cell := range header {
			if cell == name {
				return i
			}
		}
	}
	return -1
}
