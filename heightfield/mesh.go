// Package heightfield turns the orbit statistics of a fractal.Config into a
// lit 3D surface: one vertex per sample of cfg.Grid3D, raised by the coloring
// signal, smoothed, triangulated and given per-vertex normals.
package heightfield

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	fractal "github.com/marben/dist_fractal"
)

// Vertex layout handed to the rendering backend.
type Vertex struct {
	Position mgl32.Vec3 // x, y on the grid, z is the height
	Normal   mgl32.Vec3
	Texture  mgl32.Vec2
	Color    mgl32.Vec4
	Height   float32
}

// Mesh is a regular-grid triangle mesh. Vertices are row-major, XSize per row.
// The builder keeps no reference to it.
type Mesh struct {
	XSize, YSize int
	Vertices     []Vertex
	Indices      []uint32 // triangle list
}

// Build evaluates cfg.Grid3D with up to workers goroutines (GOMAXPROCS when
// workers <= 0) and assembles the mesh. Cancelling ctx abandons the build.
func Build(ctx context.Context, cfg fractal.Config, workers int) (*Mesh, error) {
	if err := cfg.Validate3D(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	grid := cfg.Grid3D
	w, h := grid.XSize, grid.YSize
	heights := make([]float64, grid.Len())
	colors := make([]fractal.Color, grid.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := range h {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := range w {
				s := fractal.Evaluate(&cfg, grid.Point(x, y))
				heights[y*w+x] = fractal.Signal(&cfg, s) * cfg.Height
				colors[y*w+x] = fractal.Resolve(&cfg, s)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("height field: %w", err)
	}

	for range cfg.SmoothPasses {
		heights = Smooth(heights, w, h, cfg.Smooth)
	}

	m := &Mesh{
		XSize:    w,
		YSize:    h,
		Vertices: make([]Vertex, len(heights)),
		Indices:  Triangulate(w, h),
	}
	cx, cy := float32(w-1)/2, float32(h-1)/2
	for y := range h {
		for x := range w {
			i := y*w + x
			hv := float32(heights[i])
			m.Vertices[i] = Vertex{
				Position: mgl32.Vec3{float32(x) - cx, float32(y) - cy, hv},
				Texture:  mgl32.Vec2{texCoord(x, w), 1 - texCoord(y, h)},
				Color:    colors[i].Vec4(),
				Height:   hv,
			}
		}
	}
	m.computeNormals()
	return m, nil
}

func texCoord(i, n int) float32 {
	if n < 2 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// Smooth returns a new height slice in which every sample is blended towards
// the average of its available 4-neighbors: (1-amount)·raw + amount·avg.
func Smooth(heights []float64, w, h int, amount float64) []float64 {
	out := make([]float64, len(heights))
	for y := range h {
		for x := range w {
			i := y*w + x
			raw := heights[i]

			var sum float64
			n := 0
			if x > 0 {
				sum += heights[i-1]
				n++
			}
			if x < w-1 {
				sum += heights[i+1]
				n++
			}
			if y > 0 {
				sum += heights[i-w]
				n++
			}
			if y < h-1 {
				sum += heights[i+w]
				n++
			}
			if n == 0 || amount == 0 {
				out[i] = raw
				continue
			}
			out[i] = raw + amount*(sum/float64(n)-raw)
		}
	}
	return out
}

// Triangulate returns the index list of a w x h vertex grid: two triangles per
// cell, counter-clockwise when seen from +z.
func Triangulate(w, h int) []uint32 {
	if w < 2 || h < 2 {
		return nil
	}
	idx := make([]uint32, 0, (w-1)*(h-1)*6)
	for y := range h - 1 {
		for x := range w - 1 {
			p1 := uint32(x + y*w)
			p2 := p1 + 1
			p3 := p1 + uint32(w)
			p4 := p3 + 1
			idx = append(idx, p1, p2, p3, p2, p4, p3)
		}
	}
	return idx
}

var up = mgl32.Vec3{0, 0, 1}

// computeNormals averages the unit normals of the faces around each vertex.
// Boundary vertices simply have fewer faces.
func (m *Mesh) computeNormals() {
	acc := make([]mgl32.Vec3, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		n := faceNormal(m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position)
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = normalizeOr(acc[i], up)
	}
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return normalizeOr(b.Sub(a).Cross(c.Sub(a)), mgl32.Vec3{})
}

func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() == 0 {
		return fallback
	}
	return v.Normalize()
}
