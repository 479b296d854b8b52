package heightfield

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// WriteOBJ writes the mesh as a Wavefront OBJ with per-vertex colors
// ("v x y z r g b"). colors replaces the vertex colors when it is not nil,
// e.g. the output of Shade.
func (m *Mesh) WriteOBJ(w io.Writer, colors []mgl32.Vec4) error {
	if colors != nil && len(colors) != len(m.Vertices) {
		return fmt.Errorf("obj: %d colors for %d vertices", len(colors), len(m.Vertices))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# height field %dx%d\n", m.XSize, m.YSize)
	for i, v := range m.Vertices {
		c := v.Color
		if colors != nil {
			c = colors[i]
		}
		fmt.Fprintf(bw, "v %g %g %g %.4f %.4f %.4f\n",
			v.Position[0], v.Position[1], v.Position[2], c[0], c[1], c[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.Texture[0], v.Texture[1])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		// OBJ indices are 1-based
		a, b, c := m.Indices[t]+1, m.Indices[t+1]+1, m.Indices[t+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}
