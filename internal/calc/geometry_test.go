package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrism(t *testing.T) {
	v, err := Prism(2, 3, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-12)

	_, err = Prism(2, 0, 0.5)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	assert.Contains(t, err.Error(), "width")

	_, err = Prism(math.NaN(), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = Prism(1, 1, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestCylinder(t *testing.T) {
	v, err := Cylinder(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, v, 1e-12)

	_, err = Cylinder(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestHollowCylinder(t *testing.T) {
	v, err := HollowCylinder(2, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*0.75, v, 1e-12)

	_, err = HollowCylinder(1, 1, 1)
	assert.ErrorIs(t, err, ErrImpossibleGeometry)

	_, err = HollowCylinder(1, 2, 1)
	assert.ErrorIs(t, err, ErrImpossibleGeometry)
}

func TestConicalFrustum(t *testing.T) {
	// zero top diameter is a full cone: pi*r^2*h/3
	cone, err := ConicalFrustum(2, 0, 3)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, cone, 1e-12)

	// equal diameters collapse to a cylinder
	frustum, err := ConicalFrustum(1, 1, 2)
	require.NoError(t, err)
	cyl, err := Cylinder(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, cyl, frustum, 1e-12)

	_, err = ConicalFrustum(1, -0.5, 2)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestPyramidFrustum(t *testing.T) {
	// A1=4, A2=1: 3/3 * (4 + 1 + 2)
	v, err := PyramidFrustum(2, 2, 1, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, v, 1e-12)

	// equal faces collapse to a prism
	v, err = PyramidFrustum(2, 3, 2, 3, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-12)

	_, err = PyramidFrustum(2, 2, 0, 1, 3)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestStairs(t *testing.T) {
	tests := []struct {
		name     string
		steps    int
		platform float64
		want     float64
	}{
		{name: "single step", steps: 1, want: 0.045},
		{name: "three steps", steps: 3, want: 0.27},
		{name: "three steps with landing", steps: 3, platform: 1, want: 0.72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stairs(tt.steps, 0.15, 0.3, 1, tt.platform)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestStairs_InvalidInput(t *testing.T) {
	_, err := Stairs(0, 0.15, 0.3, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = Stairs(3, 0.15, 0.3, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = Stairs(MaxSteps+1, 0.15, 0.3, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestStairs_MaxSteps(t *testing.T) {
	// sum of 1..1000 is 500500
	got, err := Stairs(MaxSteps, 0.1, 0.2, 1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.02*500500, got, 1e-6)
}
