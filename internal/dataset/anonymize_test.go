package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymizeDropsSensitiveColumns(t *testing.T) {
	tab := sampleTable()
	got := Anonymize(tab)

	assert.False(t, got.HasAge)
	assert.False(t, got.HasGender)
	assert.False(t, got.HasDuration)
	for _, r := range got.Rows {
		assert.True(t, math.IsNaN(r.Attrs.Age))
		assert.Empty(t, r.Attrs.Gender)
		assert.True(t, math.IsNaN(r.Attrs.Duration))
	}

	// Non-sensitive columns and row count preserved exactly.
	require.Len(t, got.Rows, len(tab.Rows))
	for i := range tab.Rows {
		assert.Equal(t, tab.Rows[i].StimulusID, got.Rows[i].StimulusID)
		assert.Equal(t, tab.Rows[i].Attrs.PID, got.Rows[i].Attrs.PID)
		assert.Equal(t, tab.Rows[i].Scores, got.Rows[i].Scores)
		assert.Equal(t, tab.Rows[i].Qual, got.Rows[i].Qual)
	}

	// Source table untouched.
	assert.True(t, tab.HasAge)
	assert.Equal(t, 22.0, tab.Rows[0].Attrs.Age)
}

func TestAnonymizeAbsentColumnsSkipped(t *testing.T) {
	tab := sampleTable()
	tab.HasAge, tab.HasGender, tab.HasDuration = false, false, false

	got := Anonymize(tab)
	assert.Len(t, got.Rows, len(tab.Rows))
	assert.False(t, got.HasAge)
}

func TestIsSensitive(t *testing.T) {
	for _, name := range []string{"age", "Age", "GENDER", "sex", "Time", "expTime", "Date", "duration"} {
		assert.True(t, IsSensitive(name), name)
	}
	for _, name := range []string{"PID", "q1", "Category", "Q2_Reason"} {
		assert.False(t, IsSensitive(name), name)
	}
}

func TestDroppedColumns(t *testing.T) {
	tab := sampleTable()
	assert.Equal(t, []string{"age", "sex", "expTime"}, DroppedColumns(tab))

	tab.HasGender = false
	assert.Equal(t, []string{"age", "expTime"}, DroppedColumns(tab))
}
