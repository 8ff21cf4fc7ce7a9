package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairedOneSidedDirectionalSignificance(t *testing.T) {
	// Constant +2 shift: infinite statistic, p exactly 0.
	r, deg := PairedOneSided([]float64{4, 5, 6}, []float64{2, 3, 4})
	require.True(t, deg.Valid())
	assert.Equal(t, 2.0, r.Diff)
	assert.True(t, math.IsInf(r.T, 1))
	assert.Equal(t, 0.0, r.P)
	assert.Less(t, r.P, 0.05)
}

func TestPairedOneSidedKnownValue(t *testing.T) {
	// diffs [1,2,0,3]: mean 1.5, sd sqrt(5/3), t = 1.5/(sd/2).
	r, deg := PairedOneSided([]float64{3, 5, 4, 6}, []float64{2, 3, 4, 3})
	require.True(t, deg.Valid())
	assert.Equal(t, 4, r.N)
	assert.Equal(t, 3, r.DF)
	assert.InDelta(t, 2.3238, r.T, 1e-3)
	assert.InDelta(t, 0.0513, r.P, 3e-3)
}

func TestPairedOneSidedNegativeDirection(t *testing.T) {
	// Stimulus below base: one-sided p near 1.
	r, deg := PairedOneSided([]float64{1, 2, 1, 2}, []float64{4, 5, 3, 6})
	require.True(t, deg.Valid())
	assert.Negative(t, r.Diff)
	assert.Greater(t, r.P, 0.9)
}

func TestPairedOneSidedDegeneracies(t *testing.T) {
	_, deg := PairedOneSided([]float64{1}, []float64{2})
	assert.Equal(t, TooFewObservations, deg)

	_, deg = PairedOneSided([]float64{1, 2}, []float64{1, 2, 3})
	assert.Equal(t, TooFewObservations, deg)

	// Identical pairs: nothing to test.
	_, deg = PairedOneSided([]float64{2, 3, 4}, []float64{2, 3, 4})
	assert.Equal(t, ZeroVariance, deg)

	// Constant negative shift: valid, p = 1.
	r, deg := PairedOneSided([]float64{1, 2, 3}, []float64{2, 3, 4})
	require.True(t, deg.Valid())
	assert.True(t, math.IsInf(r.T, -1))
	assert.Equal(t, 1.0, r.P)
}

func TestSignificanceMark(t *testing.T) {
	assert.Equal(t, MarkStrong, SignificanceMark(0.001))
	assert.Equal(t, MarkModerate, SignificanceMark(0.03))
	assert.Equal(t, MarkNone, SignificanceMark(0.05))
	assert.Equal(t, MarkNone, SignificanceMark(0.5))
}
