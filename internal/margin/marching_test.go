package margin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldOf samples a synthetic lattice with unit spacing; vals rows are
// y slices.
func fieldOf(vals [][]float64) *scalarField {
	xs := make([]float64, len(vals[0]))
	for i := range xs {
		xs[i] = float64(i)
	}

	ys := make([]float64, len(vals))
	for i := range ys {
		ys[i] = float64(i)
	}

	return newScalarField(xs, ys, func(ix, iy int) float64 { return vals[iy][ix] }, false)
}

func TestScalarField_Sentinel(t *testing.T) {
	t.Parallel()

	f := fieldOf([][]float64{
		{0.2, 0.4},
		{0.6, 0.8},
	})

	assert.Equal(t, 4, f.nx())
	assert.Equal(t, 4, f.ny())
	assert.Equal(t, borderValue, f.at(0, 0))
	assert.Equal(t, borderValue, f.at(3, 1))
	assert.Equal(t, 0.2, f.at(1, 1))
	assert.Equal(t, 0.8, f.at(2, 2))
	assert.Equal(t, -1.0, f.xs[0])
	assert.Equal(t, 2.0, f.xs[3])
}

func TestCrossingFraction(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name     string
		v0       float64
		v1       float64
		level    float64
		expected float64
	}{
		{
			name:     "midpoint",
			v0:       0,
			v1:       1,
			level:    0.5,
			expected: 0.5,
		},
		{
			name:     "descending",
			v0:       1,
			v1:       0,
			level:    0.25,
			expected: 0.75,
		},
		{
			name:     "flat edge",
			v0:       0.7,
			v1:       0.7,
			level:    0.7,
			expected: 0.5,
		},
		{
			name:     "clamped low",
			v0:       0.6,
			v1:       0.7,
			level:    0.5,
			expected: 0,
		},
		{
			name:     "clamped high",
			v0:       0.1,
			v1:       0.2,
			level:    0.3,
			expected: 1,
		},
	}

	for _, test := range tt {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, test.expected, crossingFraction(test.v0, test.v1, test.level), 1e-12)
		})
	}
}

func TestRings_PlateauInsideGrid(t *testing.T) {
	t.Parallel()

	f := fieldOf([][]float64{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	})

	rings := f.rings(0.5)
	require.Len(t, rings, 1)

	// square from 0.5 to 3.5 with the four corners cut at midpoints
	assert.InDelta(t, 8.5, math.Abs(rings[0].Area()), 1e-9)
	assert.Len(t, rings[0], 12)

	for _, p := range rings[0] {
		assert.GreaterOrEqual(t, p.Dim(0), 0.5)
		assert.LessOrEqual(t, p.Dim(0), 3.5)
		assert.GreaterOrEqual(t, p.Dim(1), 0.5)
		assert.LessOrEqual(t, p.Dim(1), 3.5)
	}
}

func TestRings_RegionTouchingBorder(t *testing.T) {
	t.Parallel()

	f := fieldOf([][]float64{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	})

	rings := f.rings(0.5)
	require.Len(t, rings, 1)

	// the sentinel ring closes the region just outside the lattice
	assert.InDelta(t, 12.125, math.Abs(rings[0].Area()), 1e-9)

	for _, p := range rings[0] {
		assert.GreaterOrEqual(t, p.Dim(0), -0.25)
		assert.LessOrEqual(t, p.Dim(0), 3.25)
		assert.GreaterOrEqual(t, p.Dim(1), -0.25)
		assert.LessOrEqual(t, p.Dim(1), 3.25)
	}
}

func TestRings_TwoRegions(t *testing.T) {
	t.Parallel()

	f := fieldOf([][]float64{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, 1, 0},
		{0, 1, 1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	})

	rings := f.rings(0.5)
	require.Len(t, rings, 2)

	areas := []float64{math.Abs(rings[0].Area()), math.Abs(rings[1].Area())}
	if areas[0] > areas[1] {
		areas[0], areas[1] = areas[1], areas[0]
	}

	assert.InDelta(t, 0.5, areas[0], 1e-9)
	assert.InDelta(t, 5.5, areas[1], 1e-9)
}

func TestRings_LevelOutsideField(t *testing.T) {
	t.Parallel()

	f := fieldOf([][]float64{
		{0.4, 0.4, 0.4},
		{0.4, 0.4, 0.4},
		{0.4, 0.4, 0.4},
	})

	assert.Empty(t, f.rings(0.7))
	assert.Len(t, f.rings(0.2), 1)
}

func TestRings_SaddleCells(t *testing.T) {
	t.Parallel()

	f := fieldOf([][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})

	rings := f.rings(0.5)
	require.NotEmpty(t, rings)

	for _, ring := range rings {
		assert.Greater(t, len(ring), 2)
		for _, p := range ring {
			assert.False(t, math.IsNaN(p.Dim(0)))
			assert.False(t, math.IsNaN(p.Dim(1)))
		}
	}

	assert.Equal(t, rings, f.rings(0.5))
}
