package fractal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	fractal "github.com/marben/dist_fractal"
)

// OrbitSuite checks the orbit statistics against a small default config.
type OrbitSuite struct {
	suite.Suite
	cfg fractal.Config
}

func (s *OrbitSuite) SetupTest() {
	s.cfg = fractal.DefaultConfig()
	s.cfg.MaxIter = 100
	s.cfg.Skip = 2
}

// TestOriginNeverEscapes: c = 0 stays at the origin under the classic formula.
func (s *OrbitSuite) TestOriginNeverEscapes() {
	smp := fractal.Evaluate(&s.cfg, 0)
	require.False(s.T(), smp.Escaped)
	require.Equal(s.T(), s.cfg.MaxIter, smp.Iterations)
	require.Equal(s.T(), float64(s.cfg.MaxIter), smp.Smooth)
	require.Equal(s.T(), fractal.Interior, fractal.Resolve(&s.cfg, smp))
}

// TestImmediateEscape: |2+2i|² = 8 exceeds the threshold on the first step.
func (s *OrbitSuite) TestImmediateEscape() {
	smp := fractal.Evaluate(&s.cfg, complex(2, 2))
	require.True(s.T(), smp.Escaped)
	require.Equal(s.T(), 0, smp.Iterations)
	require.GreaterOrEqual(s.T(), smp.Smooth, 0.0)
	require.Less(s.T(), smp.Smooth, 1.0)
	// log(log|z| / log √R) with |z|² = 8, R = 4
	require.InDelta(s.T(), 1-math.Log2(1.5), smp.Smooth, 1e-12)
	require.Equal(s.T(), 0.0, smp.Stripe, "no iteration reached the skip count")
}

// TestSkipBeyondMaxIter: no stripe samples are ever taken.
func (s *OrbitSuite) TestSkipBeyondMaxIter() {
	s.cfg.Skip = s.cfg.MaxIter
	for _, c := range []complex128{0, complex(-0.75, 0.1), complex(0.3, 0.5)} {
		require.Equal(s.T(), 0.0, fractal.Evaluate(&s.cfg, c).Stripe)
	}
}

// TestPointTrapAtOrbit: the orbit of c = 0 sits on a trap at the origin.
func (s *OrbitSuite) TestPointTrapAtOrbit() {
	s.cfg.Traps.Points[0] = fractal.PointTrap{Active: true}
	smp := fractal.Evaluate(&s.cfg, 0)
	require.Equal(s.T(), 0.0, smp.Traps[0])
	for i := 1; i < fractal.NumTraps; i++ {
		require.True(s.T(), math.IsInf(smp.Traps[i], 1), "inactive trap %d", i)
	}
	d, ok := smp.MinTrap()
	require.True(s.T(), ok)
	require.Equal(s.T(), 0.0, d)
}

// TestInactiveTrapsDoNotColor: trap coloring falls back to the smooth count.
func (s *OrbitSuite) TestInactiveTrapsDoNotColor() {
	c := complex(-0.74, 0.2)
	smp := fractal.Evaluate(&s.cfg, c)
	_, ok := smp.MinTrap()
	require.False(s.T(), ok)

	smooth := s.cfg
	smooth.Coloring = fractal.ColorSmooth
	trap := s.cfg
	trap.Coloring = fractal.ColorTrap
	require.Equal(s.T(), fractal.Resolve(&smooth, smp), fractal.Resolve(&trap, smp))
}

// TestOverflowIsEscape: with an unreachable threshold |z|² overflows first.
func (s *OrbitSuite) TestOverflowIsEscape() {
	s.cfg.EscapeRadius = math.MaxFloat64
	require.NoError(s.T(), s.cfg.Validate())

	smp := fractal.Evaluate(&s.cfg, 2)
	require.True(s.T(), smp.Escaped)
	require.Less(s.T(), smp.Iterations, s.cfg.MaxIter)
	require.Equal(s.T(), float64(smp.Iterations), smp.Smooth)
	require.GreaterOrEqual(s.T(), smp.Stripe, 0.0)
	require.LessOrEqual(s.T(), smp.Stripe, 1.0)
}

// TestInvariantsAllVariations sweeps a coarse grid for every variation.
func (s *OrbitSuite) TestInvariantsAllVariations() {
	s.cfg.Grid = fractal.Grid{XSize: 24, YSize: 18, Region: fractal.Region{Xmin: -2.5, Xmax: 1.5, Ymin: -1.5, Ymax: 1.5}}
	for k := range fractal.VariationKind(fractal.NumVariations) {
		v, err := fractal.NewVariation(k, fractal.DefaultVariationParams)
		require.NoError(s.T(), err)
		s.cfg.Variation = v
		for py := range s.cfg.Grid.YSize {
			for px := range s.cfg.Grid.XSize {
				smp := fractal.EvaluatePixel(&s.cfg, px, py)
				require.GreaterOrEqual(s.T(), smp.Iterations, 0)
				require.LessOrEqual(s.T(), smp.Iterations, s.cfg.MaxIter)
				require.GreaterOrEqual(s.T(), smp.Stripe, 0.0)
				require.LessOrEqual(s.T(), smp.Stripe, 1.0)
				if smp.Escaped {
					k := float64(smp.Iterations)
					require.GreaterOrEqual(s.T(), smp.Smooth, k, "%s (%d,%d)", v.Kind(), px, py)
					require.Less(s.T(), smp.Smooth, k+1, "%s (%d,%d)", v.Kind(), px, py)
				} else {
					require.Equal(s.T(), s.cfg.MaxIter, smp.Iterations)
				}
			}
		}
	}
}

// TestDeterministic: equal snapshots give identical samples.
func (s *OrbitSuite) TestDeterministic() {
	other := s.cfg
	c := complex(-0.7453, 0.1127)
	require.Equal(s.T(), fractal.Evaluate(&s.cfg, c), fractal.Evaluate(&other, c))
}

func TestOrbitSuite(t *testing.T) {
	suite.Run(t, new(OrbitSuite))
}

func TestVariationsDiffer(t *testing.T) {
	cfg := fractal.DefaultConfig()
	c := complex(-0.5, 0.6)

	seen := make(map[fractal.Sample]fractal.VariationKind)
	for k := range fractal.VariationKind(fractal.NumVariations) {
		v, err := fractal.NewVariation(k, fractal.DefaultVariationParams)
		require.NoError(t, err)
		cfg.Variation = v
		seen[fractal.Evaluate(&cfg, c)] = k
	}
	assert.Greater(t, len(seen), 1)
}

func TestFoamPower(t *testing.T) {
	cfg := fractal.DefaultConfig()
	c := complex(-0.3, 0.4)

	cfg.Variation = fractal.Foam{Power: 2, Q: -0.5, W: 0.2}
	square := fractal.Evaluate(&cfg, c)
	cfg.Variation = fractal.Foam{Power: 3, Q: -0.5, W: 0.2}
	cube := fractal.Evaluate(&cfg, c)

	require.NotEqual(t, square, cube)
}

func TestHigherPowerMandelbrot(t *testing.T) {
	cfg := fractal.DefaultConfig()
	cfg.Variation = fractal.Mandelbrot{Power: 3}

	require.False(t, fractal.Evaluate(&cfg, 0).Escaped)
	smp := fractal.Evaluate(&cfg, complex(1, 1))
	require.True(t, smp.Escaped)
	require.Less(t, smp.Smooth, float64(smp.Iterations+1))
}
