package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

func attrRow(pid string, age float64, gender string, duration float64) types.TidyRow {
	return types.TidyRow{
		StimulusID: "base",
		Stimulus:   types.ParseStimulus("base", 1),
		Attrs:      types.Attributes{PID: pid, Age: age, Gender: gender, Duration: duration},
	}
}

func TestDemographics(t *testing.T) {
	tab := &types.Table{HasAge: true, HasGender: true, HasDuration: true}
	tab.Rows = []types.TidyRow{
		attrRow("1", 20, "female", 30),
		attrRow("1", 20, "female", 30), // duplicate rows count once
		attrRow("2", 24, "male", 40),
		attrRow("3", 22, "female", 35),
	}

	res, ok := Demographics(tab)
	require.True(t, ok)
	assert.Equal(t, 3, res.N)
	assert.InDelta(t, 22.0, res.Age.Mean, 1e-12)
	assert.InDelta(t, 2.0, res.Age.SD, 1e-12)
	assert.Equal(t, 20.0, res.Age.Min)
	assert.Equal(t, 24.0, res.Age.Max)
	assert.InDelta(t, 35.0, res.Duration.Mean, 1e-12)

	require.Len(t, res.Genders, 2)
	assert.Equal(t, GenderCount{Label: "female", Count: 2}, res.Genders[0])
	assert.Equal(t, GenderCount{Label: "male", Count: 1}, res.Genders[1])
}

func TestDemographicsSkippedWithoutAttributes(t *testing.T) {
	tab := &types.Table{Rows: []types.TidyRow{attrRow("1", 0, "", 0)}}
	_, ok := Demographics(tab)
	assert.False(t, ok)
}

func TestDemographicsPartialAttributes(t *testing.T) {
	tab := &types.Table{HasAge: true}
	tab.Rows = []types.TidyRow{attrRow("1", 21, "", 0), attrRow("2", 25, "", 0)}

	res, ok := Demographics(tab)
	require.True(t, ok)
	assert.True(t, res.HasAge)
	assert.False(t, res.HasGender)
	assert.InDelta(t, 23.0, res.Age.Mean, 1e-12)
	assert.Empty(t, res.Genders)
}
