package types

import "errors"

// Config validation errors.
var (
	ErrInputDirEmpty     = errors.New("input_dir must not be empty")
	ErrOutputDirEmpty    = errors.New("output_dir must not be empty")
	ErrKeepLevelNegative = errors.New("keep_level must be zero or positive")
	ErrBaseLevelNegative = errors.New("base_level must be zero or positive")
	ErrNoCategories      = errors.New("categories mapping must not be empty")
	ErrTargetNotQuestion = errors.New("target must be one of the question columns")
	ErrTargetNoCategory  = errors.New("target refers to an unknown category")
	ErrSchemaPIDEmpty    = errors.New("schema must accept at least one PID column name")
)

// SentinelConfig describes the post-anonymization cleanup of a known
// no-answer code in one question column. It is applied by the orchestrator
// after the anonymizer runs; it is not a general anonymization rule.
type SentinelConfig struct {
	Column      string  `mapstructure:"column" yaml:"column"`
	Missing     float64 `mapstructure:"missing" yaml:"missing"`
	Replacement float64 `mapstructure:"replacement" yaml:"replacement"`
}

// SchemaConfig maps each canonical participant attribute to the source
// column names accepted for it. PID is required; the others are optional
// and simply absent from the tidy table when no listed name matches.
type SchemaConfig struct {
	PID      []string `mapstructure:"pid" yaml:"pid"`
	Age      []string `mapstructure:"age" yaml:"age"`
	Gender   []string `mapstructure:"gender" yaml:"gender"`
	Duration []string `mapstructure:"duration" yaml:"duration"`
}

// Config holds every pipeline option, including the variant switches that
// differ between observed runs of the experiment (level filtering, base
// level value, regression standardization).
type Config struct {
	InputDir  string `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// KeepLevel filters the tidy table to base rows plus stimulus rows at
	// this level. Zero keeps every level.
	KeepLevel int `mapstructure:"keep_level" yaml:"keep_level"`

	// BaseLevel is the level assigned to "base" stimuli during parsing.
	BaseLevel int `mapstructure:"base_level" yaml:"base_level"`

	// PoolLevels runs the strength check once over all retained levels.
	// When false, the check and its post-hoc comparison run per level.
	PoolLevels bool `mapstructure:"pool_levels" yaml:"pool_levels"`

	// StandardizeBeforeRegression applies within-subject standardization
	// to predictors and outcomes before the OLS fit.
	StandardizeBeforeRegression bool `mapstructure:"standardize_before_regression" yaml:"standardize_before_regression"`

	Sentinel SentinelConfig `mapstructure:"sentinel" yaml:"sentinel"`
	Schema   SchemaConfig   `mapstructure:"schema" yaml:"schema"`

	// Categories maps each manipulation name to the set index of its
	// block in the written-answer logs.
	Categories map[string]int `mapstructure:"categories" yaml:"categories"`

	// Targets maps each manipulation name to the question column its
	// manipulation check compares against base.
	Targets map[string]string `mapstructure:"targets" yaml:"targets"`
}

// DefaultConfig returns the configuration of the reference run: level-2
// stimuli only, base at level 1, pooled strength check, standardized
// regression, and the five manipulation categories of the experiment.
func DefaultConfig() Config {
	return Config{
		InputDir:                    ".",
		OutputDir:                   "./generated",
		KeepLevel:                   2,
		BaseLevel:                   1,
		PoolLevels:                  true,
		StandardizeBeforeRegression: true,
		Sentinel: SentinelConfig{
			Column:      "q7",
			Missing:     -1,
			Replacement: 1,
		},
		Schema: SchemaConfig{
			PID:      []string{"PID"},
			Age:      []string{"age", "Age"},
			Gender:   []string{"sex", "Sex", "gender", "Gender"},
			Duration: []string{"expTime", "Time", "time"},
		},
		Categories: map[string]int{
			"position":   1,
			"size":       2,
			"lack":       3,
			"repetition": 4,
			"human":      5,
		},
		Targets: map[string]string{
			"position":   "q3",
			"size":       "q4",
			"lack":       "q5",
			"repetition": "q6",
			"human":      "q7",
		},
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return ErrInputDirEmpty
	}
	if c.OutputDir == "" {
		return ErrOutputDirEmpty
	}
	if c.KeepLevel < 0 {
		return ErrKeepLevelNegative
	}
	if c.BaseLevel < 0 {
		return ErrBaseLevelNegative
	}
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}
	if len(c.Schema.PID) == 0 {
		return ErrSchemaPIDEmpty
	}
	for category, target := range c.Targets {
		if _, ok := c.Categories[category]; !ok {
			return ErrTargetNoCategory
		}
		if _, ok := QuestionIndex(target); !ok {
			return ErrTargetNotQuestion
		}
	}
	if c.Sentinel.Column != "" {
		if _, ok := QuestionIndex(c.Sentinel.Column); !ok {
			return ErrTargetNotQuestion
		}
	}
	return nil
}
