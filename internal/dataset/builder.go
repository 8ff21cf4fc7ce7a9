package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/Suzuka-Y/B4-2-analysis/internal/qualparse"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// filenamePID extracts a numeric participant ID prefix like "12_" from a
// source filename.
var filenamePID = regexp.MustCompile(`^(\d+)_`)

// Build reads every quantitative CSV under quantDir, pivots each from one
// column per stimulus to one row per stimulus, merges in the participant's
// written answers from qualDir, and concatenates the result. Files that
// cannot be read or lack the questions column are skipped with a warning.
// Returns ErrNoData if nothing parsed.
func Build(quantDir, qualDir string, cfg types.Config, log *zap.SugaredLogger) (*types.Table, error) {
	files, err := filepath.Glob(filepath.Join(quantDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list quantitative files: %w", err)
	}
	sort.Strings(files)

	table := &types.Table{}
	for _, file := range files {
		part, err := buildParticipant(file, qualDir, cfg, log)
		if err != nil {
			log.Warnw("skipping quantitative file", "file", filepath.Base(file), "error", err)
			continue
		}
		table.Rows = append(table.Rows, part.Rows...)
		table.HasAge = table.HasAge || part.HasAge
		table.HasGender = table.HasGender || part.HasGender
		table.HasDuration = table.HasDuration || part.HasDuration
	}
	if len(table.Rows) == 0 {
		return nil, ErrNoData
	}
	return table, nil
}

// buildParticipant converts one wide-format file into long-format rows.
func buildParticipant(file, qualDir string, cfg types.Config, log *zap.SugaredLogger) (*types.Table, error) {
	records, err := readCSVFile(file)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}

	header := records[0]
	schema, err := resolveSchema(header, cfg.Schema)
	if err != nil {
		return nil, err
	}

	attrs, present := extractAttributes(records[1], schema, file)

	qual := map[int]types.QualitativeBlock{}
	qualPath := filepath.Join(qualDir, fmt.Sprintf("PID=%s.txt", attrs.PID))
	if _, statErr := os.Stat(qualPath); statErr == nil {
		var parseErr error
		qual, parseErr = qualparse.ParseFile(qualPath)
		if parseErr != nil {
			log.Warnw("written-answer log unreadable, continuing without it",
				"pid", attrs.PID, "error", parseErr)
		}
	}

	// Index question rows by name so each stimulus column can be read
	// straight down.
	questionRows := make(map[string][]string)
	for _, rec := range records[1:] {
		if schema.questions < len(rec) {
			questionRows[rec[schema.questions]] = rec
		}
	}

	part := &types.Table{
		HasAge:      present.age,
		HasGender:   present.gender,
		HasDuration: present.duration,
	}
	for _, col := range schema.stimuli {
		if col >= len(header) {
			continue
		}
		row := types.TidyRow{
			StimulusID: header[col],
			Stimulus:   types.ParseStimulus(header[col], cfg.BaseLevel),
			Attrs:      attrs,
		}
		for i, q := range types.QuestionColumns {
			row.Scores[i] = math.NaN()
			if rec, ok := questionRows[q]; ok && col < len(rec) {
				if v, convErr := strconv.ParseFloat(rec[col], 64); convErr == nil {
					row.Scores[i] = v
				}
			}
		}
		if setIdx, ok := cfg.Categories[row.Stimulus.Category]; ok {
			row.Qual = qual[setIdx]
		}
		part.Rows = append(part.Rows, row)
	}
	return part, nil
}

// attrPresence records which optional attribute columns a file carried.
type attrPresence struct {
	age      bool
	gender   bool
	duration bool
}

// extractAttributes pulls the participant attributes from the first data
// row. A missing or non-numeric PID falls back to the numeric filename
// prefix, then to the Unknown sentinel.
func extractAttributes(firstRow []string, schema columnSchema, file string) (types.Attributes, attrPresence) {
	attrs := types.Attributes{Age: math.NaN(), Duration: math.NaN()}
	var present attrPresence

	cell := func(idx int) (string, bool) {
		if idx >= 0 && idx < len(firstRow) {
			return firstRow[idx], true
		}
		return "", false
	}

	attrs.PID = types.UnknownPID
	if raw, ok := cell(schema.pid); ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			attrs.PID = strconv.Itoa(int(v))
		}
	}
	if attrs.PID == types.UnknownPID {
		if m := filenamePID.FindStringSubmatch(filepath.Base(file)); m != nil {
			n, _ := strconv.Atoi(m[1])
			attrs.PID = strconv.Itoa(n)
		}
	}

	if raw, ok := cell(schema.age); ok {
		present.age = true
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			attrs.Age = v
		}
	}
	if raw, ok := cell(schema.gender); ok {
		present.gender = true
		attrs.Gender = raw
	}
	if raw, ok := cell(schema.duration); ok {
		present.duration = true
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			attrs.Duration = v
		}
	}
	return attrs, present
}

// readCSVFile reads all records of one CSV file, tolerating ragged rows.
func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
