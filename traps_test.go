package fractal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	fractal "github.com/marben/dist_fractal"
)

func TestPointTrapDistance(t *testing.T) {
	p := fractal.PointTrap{X: 1, Y: 1}
	assert.InDelta(t, 5.0, p.Distance(complex(4, 5)), 1e-12)
}

func TestLineTrapDistance(t *testing.T) {
	cases := []struct {
		name string
		trap fractal.LineTrap
		z    complex128
		want float64
	}{
		{"Horizontal", fractal.LineTrap{Slope: 0}, complex(3, 4), 4},
		{"Vertical", fractal.LineTrap{Slope: math.Inf(1)}, complex(3, 4), 3},
		{"Diagonal", fractal.LineTrap{Slope: 1}, complex(1, 0), math.Sqrt2 / 2},
		{"Offset", fractal.LineTrap{X: 0, Y: 2, Slope: 0}, complex(-7, -1), 3},
		{"OnLine", fractal.LineTrap{X: 1, Y: 1, Slope: -2}, complex(2, -1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.trap.Distance(tc.z), 1e-12)
		})
	}
}

func TestTrapsOrder(t *testing.T) {
	var ts fractal.Traps
	ts.Points[2].Active = true
	ts.Lines[0] = fractal.LineTrap{Active: true, Slope: 5}

	assert.True(t, ts.AnyActive())
	assert.True(t, ts.At(2).IsActive())
	assert.Equal(t, fractal.LineTrap{Active: true, Slope: 5}, ts.At(fractal.MaxPointTraps))
	assert.False(t, ts.At(fractal.NumTraps-1).IsActive())
}

func TestTrapsAtOutOfRange(t *testing.T) {
	var ts fractal.Traps
	assert.Panics(t, func() { ts.At(-1) })
	assert.Panics(t, func() { ts.At(fractal.NumTraps) })
}
