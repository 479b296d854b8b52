package heightfield

import (
	"github.com/go-gl/mathgl/mgl32"

	fractal "github.com/marben/dist_fractal"
)

// Shade returns the displayed color of every vertex under l: vertex color times
// light intensity, clamped per channel. The mesh itself is not modified.
func (m *Mesh) Shade(l fractal.Light) []mgl32.Vec4 {
	out := make([]mgl32.Vec4, len(m.Vertices))
	for i, v := range m.Vertices {
		c := fractal.Color{
			R: float64(v.Color[0]),
			G: float64(v.Color[1]),
			B: float64(v.Color[2]),
			A: float64(v.Color[3]),
		}
		out[i] = l.Shade(c, v.Position, v.Normal).Vec4()
	}
	return out
}
