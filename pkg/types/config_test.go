package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.KeepLevel)
	assert.Equal(t, 1, cfg.BaseLevel)
	assert.True(t, cfg.PoolLevels)
	assert.True(t, cfg.StandardizeBeforeRegression)
	assert.Equal(t, "q7", cfg.Sentinel.Column)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty input dir rejected",
			mutate:  func(c *Config) { c.InputDir = "" },
			wantErr: ErrInputDirEmpty,
		},
		{
			name:    "empty output dir rejected",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: ErrOutputDirEmpty,
		},
		{
			name:    "negative keep level rejected",
			mutate:  func(c *Config) { c.KeepLevel = -1 },
			wantErr: ErrKeepLevelNegative,
		},
		{
			name:    "negative base level rejected",
			mutate:  func(c *Config) { c.BaseLevel = -2 },
			wantErr: ErrBaseLevelNegative,
		},
		{
			name:    "empty categories rejected",
			mutate:  func(c *Config) { c.Categories = nil },
			wantErr: ErrNoCategories,
		},
		{
			name:    "empty pid schema rejected",
			mutate:  func(c *Config) { c.Schema.PID = nil },
			wantErr: ErrSchemaPIDEmpty,
		},
		{
			name:    "target for unknown category rejected",
			mutate:  func(c *Config) { c.Targets["blur"] = "q3" },
			wantErr: ErrTargetNoCategory,
		},
		{
			name:    "target outside question columns rejected",
			mutate:  func(c *Config) { c.Targets["size"] = "q9" },
			wantErr: ErrTargetNotQuestion,
		},
		{
			name:    "sentinel outside question columns rejected",
			mutate:  func(c *Config) { c.Sentinel.Column = "age" },
			wantErr: ErrTargetNotQuestion,
		},
		{
			name:   "zero keep level keeps all levels",
			mutate: func(c *Config) { c.KeepLevel = 0 },
		},
		{
			name:   "empty sentinel column disables cleanup",
			mutate: func(c *Config) { c.Sentinel.Column = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestQuestionIndex(t *testing.T) {
	i, ok := QuestionIndex("q1")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = QuestionIndex("q7")
	assert.True(t, ok)
	assert.Equal(t, 6, i)

	_, ok = QuestionIndex("q8")
	assert.False(t, ok)
	_, ok = QuestionIndex("age")
	assert.False(t, ok)
}

func TestTableHelpers(t *testing.T) {
	tab := &Table{Rows: []TidyRow{
		{Attrs: Attributes{PID: "1"}, Stimulus: ParseStimulus("base", 1)},
		{Attrs: Attributes{PID: "1"}, Stimulus: ParseStimulus("size2", 1)},
		{Attrs: Attributes{PID: "2"}, Stimulus: ParseStimulus("size1", 1)},
		{Attrs: Attributes{PID: "2"}, Stimulus: ParseStimulus("lack2", 1)},
	}}

	assert.Equal(t, []string{"1", "2"}, tab.ParticipantIDs())
	assert.Equal(t, []string{"base", "size", "lack"}, tab.Categories())
	assert.Equal(t, []int{1, 2}, tab.Levels())

	clone := tab.Clone()
	clone.Rows[0].Attrs.PID = "changed"
	assert.Equal(t, "1", tab.Rows[0].Attrs.PID)
}
