package heightfield_test

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	fractal "github.com/marben/dist_fractal"
	"github.com/marben/dist_fractal/heightfield"
)

// MeshSuite builds small height fields from a shared config.
type MeshSuite struct {
	suite.Suite
	ctx context.Context
	cfg fractal.Config
}

func (s *MeshSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = fractal.DefaultConfig()
	s.cfg.MaxIter = 50
	s.cfg.Grid3D.XSize, s.cfg.Grid3D.YSize = 8, 6
}

// TestSizes: one vertex per sample, two triangles per cell.
func (s *MeshSuite) TestSizes() {
	m, err := heightfield.Build(s.ctx, s.cfg, 2)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 8, m.XSize)
	require.Equal(s.T(), 6, m.YSize)
	require.Len(s.T(), m.Vertices, 48)
	require.Len(s.T(), m.Indices, 7*5*6)
	for _, v := range m.Vertices {
		require.InDelta(s.T(), 1.0, float64(v.Normal.Len()), 1e-5)
		require.Equal(s.T(), v.Height, v.Position[2])
	}
}

// TestFlat: zero relief gives vertical normals everywhere.
func (s *MeshSuite) TestFlat() {
	s.cfg.Height = 0
	m, err := heightfield.Build(s.ctx, s.cfg, 0)
	require.NoError(s.T(), err)
	for i, v := range m.Vertices {
		require.Equal(s.T(), mgl32.Vec3{0, 0, 1}, v.Normal, "vertex %d", i)
		require.Zero(s.T(), v.Height)
	}
}

// TestTexture spans the unit square with v flipped.
func (s *MeshSuite) TestTexture() {
	m, err := heightfield.Build(s.ctx, s.cfg, 0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), mgl32.Vec2{0, 1}, m.Vertices[0].Texture)
	require.Equal(s.T(), mgl32.Vec2{1, 0}, m.Vertices[len(m.Vertices)-1].Texture)
}

// TestSmoothingChangesNothingAtZero: Smooth 0 keeps the raw signal.
func (s *MeshSuite) TestSmoothingChangesNothingAtZero() {
	s.cfg.Smooth = 0
	raw, err := heightfield.Build(s.ctx, s.cfg, 0)
	require.NoError(s.T(), err)

	s.cfg.SmoothPasses = 0
	s.cfg.Smooth = 1
	none, err := heightfield.Build(s.ctx, s.cfg, 0)
	require.NoError(s.T(), err)

	for i := range raw.Vertices {
		require.Equal(s.T(), raw.Vertices[i].Height, none.Vertices[i].Height)
	}
}

func (s *MeshSuite) TestInvalid() {
	s.cfg.Smooth = 2
	_, err := heightfield.Build(s.ctx, s.cfg, 0)
	require.ErrorIs(s.T(), err, fractal.ErrInvalidConfig)
}

func (s *MeshSuite) TestCanceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := heightfield.Build(ctx, s.cfg, 1)
	require.ErrorIs(s.T(), err, context.Canceled)
}

func TestMeshSuite(t *testing.T) {
	suite.Run(t, new(MeshSuite))
}

func TestSmooth(t *testing.T) {
	const w, h = 4, 3
	heights := []float64{
		0, 9, 1, 4,
		7, 2, 8, 3,
		5, 0, 6, 2,
	}

	require.Equal(t, heights, heightfield.Smooth(heights, w, h, 0))

	full := heightfield.Smooth(heights, w, h, 1)
	half := heightfield.Smooth(heights, w, h, 0.5)
	// corner (0,0): neighbors 9 and 7
	require.InDelta(t, 8.0, full[0], 1e-12)
	// centre (1,1): neighbors 7, 8, 9, 0
	require.InDelta(t, 6.0, full[5], 1e-12)

	for i, raw := range heights {
		lo, hi := math.Min(raw, full[i]), math.Max(raw, full[i])
		require.GreaterOrEqual(t, half[i], lo)
		require.LessOrEqual(t, half[i], hi)
		if raw != full[i] {
			require.NotEqual(t, raw, half[i])
			require.NotEqual(t, full[i], half[i])
		}
	}
	require.Equal(t, 9.0, heights[1], "input is not modified")
}

func TestTriangulate(t *testing.T) {
	require.Nil(t, heightfield.Triangulate(1, 5))
	require.Nil(t, heightfield.Triangulate(5, 1))

	const w, h = 3, 2
	idx := heightfield.Triangulate(w, h)
	require.Len(t, idx, (w-1)*(h-1)*6)
	require.Equal(t, []uint32{0, 1, 3, 1, 4, 3}, idx[:6])

	pos := func(i uint32) mgl32.Vec3 { return mgl32.Vec3{float32(int(i) % w), float32(int(i) / w), 0} }
	for t0 := 0; t0 < len(idx); t0 += 3 {
		a, b, c := pos(idx[t0]), pos(idx[t0+1]), pos(idx[t0+2])
		n := b.Sub(a).Cross(c.Sub(a))
		require.Greater(t, n[2], float32(0), "triangle %d must face +z", t0/3)
	}
}
