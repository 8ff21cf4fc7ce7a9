package types

import "regexp"

// StimulusKind discriminates the parsed forms of a stimulus identifier.
type StimulusKind int

const (
	// StimulusBase is the unmanipulated baseline stimulus.
	StimulusBase StimulusKind = iota
	// StimulusManipulation is a named manipulation at an intensity level.
	StimulusManipulation
	// StimulusUnknown is an identifier that matched no known form. The raw
	// identifier is carried through as the category with no level.
	StimulusUnknown
)

// BaseCategory is the category name of baseline rows in the tidy table.
const BaseCategory = "base"

// Stimulus is a parsed stimulus identifier.
type Stimulus struct {
	Kind     StimulusKind
	Category string // manipulation name, BaseCategory, or the raw ID
	Level    int    // intensity level; meaningful only when HasLevel
	HasLevel bool
}

// manipulationID matches a manipulation identifier: a lowercase name
// followed by a decimal level, e.g. "size2".
var manipulationID = regexp.MustCompile(`^([a-z]+)([0-9]+)$`)

// ParseStimulus parses a raw stimulus identifier. "base" becomes a
// StimulusBase at baseLevel; letters-then-digits becomes a
// StimulusManipulation; anything else passes through as StimulusUnknown
// with the raw value as its category and no level.
func ParseStimulus(id string, baseLevel int) Stimulus {
	if id == BaseCategory {
		return Stimulus{Kind: StimulusBase, Category: BaseCategory, Level: baseLevel, HasLevel: true}
	}
	if m := manipulationID.FindStringSubmatch(id); m != nil {
		level := 0
		for _, r := range m[2] {
			level = level*10 + int(r-'0')
		}
		return Stimulus{Kind: StimulusManipulation, Category: m[1], Level: level, HasLevel: true}
	}
	return Stimulus{Kind: StimulusUnknown, Category: id}
}

// IsBase reports whether the stimulus is the baseline condition.
func (s Stimulus) IsBase() bool { return s.Kind == StimulusBase }
