package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneWayKnownValue(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3},
		{2, 3, 4},
		{5, 6, 7},
	}
	r, deg := OneWay(groups)
	require.True(t, deg.Valid())
	assert.Equal(t, 2, r.DFBetween)
	assert.Equal(t, 6, r.DFWithin)
	assert.InDelta(t, 13.0, r.F, 1e-9)
	assert.InDelta(t, 1.0, r.MSWithin, 1e-9)
	assert.InDelta(t, 0.00655, r.P, 1e-3)
}

func TestOneWayNoGroupDifference(t *testing.T) {
	r, deg := OneWay([][]float64{{1, 2, 3}, {1, 2, 3}})
	require.True(t, deg.Valid())
	assert.InDelta(t, 0, r.F, 1e-12)
	assert.Greater(t, r.P, 0.9)
}

func TestOneWayDegeneracies(t *testing.T) {
	_, deg := OneWay([][]float64{{1, 2, 3}})
	assert.Equal(t, TooFewGroups, deg)

	_, deg = OneWay([][]float64{{1, 2, 3}, {}})
	assert.Equal(t, TooFewGroups, deg)

	_, deg = OneWay([][]float64{{1}, {2}})
	assert.Equal(t, TooFewObservations, deg)

	_, deg = OneWay([][]float64{{2, 2}, {2, 2}})
	assert.Equal(t, ZeroVariance, deg)
}

func TestOneWaySeparatedConstantGroups(t *testing.T) {
	// Between-group variation with no within-group variation.
	r, deg := OneWay([][]float64{{1, 1}, {5, 5}})
	require.True(t, deg.Valid())
	assert.True(t, math.IsInf(r.F, 1))
	assert.Equal(t, 0.0, r.P)
}

func TestOneWayIgnoresEmptyGroups(t *testing.T) {
	r, deg := OneWay([][]float64{{1, 2, 3}, {}, {2, 3, 4}, {5, 6, 7}})
	require.True(t, deg.Valid())
	assert.Equal(t, 2, r.DFBetween)
}
