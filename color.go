package fractal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Coloring selects the orbit statistic that drives the color.
type Coloring int

const (
	ColorIteration Coloring = iota // raw escape iteration
	ColorSmooth                    // smooth iteration count
	ColorStripe                    // stripe average
	ColorTrap                      // nearest active orbit trap

	NumColorings = int(ColorTrap) + 1
)

func (c Coloring) String() string {
	switch c {
	case ColorIteration:
		return "iteration"
	case ColorSmooth:
		return "smooth"
	case ColorStripe:
		return "stripe"
	case ColorTrap:
		return "trap"
	}
	return fmt.Sprintf("Coloring(%d)", int(c))
}

func (c Coloring) valid() bool { return c >= 0 && int(c) < NumColorings }

// ParseColoring maps a coloring name back to its selector.
func ParseColoring(name string) (Coloring, error) {
	for c := range Coloring(NumColorings) {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColoring, name)
}

// Color is a straight (not premultiplied) RGBA color with channels in [0,1].
// It implements color.Color.
type Color struct {
	R, G, B, A float64
}

// Interior is the color of points whose orbit never escapes.
var Interior = Color{A: 1}

func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c.A)
	ch := func(v float64) uint32 { return uint32(clamp01(v)*alpha*0xffff + 0.5) }
	return ch(c.R), ch(c.G), ch(c.B), uint32(alpha*0xffff + 0.5)
}

// RGBA8 converts c to the 8-bit premultiplied form stored by image.RGBA.
func (c Color) RGBA8() color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// Scale multiplies the color channels by f, clamping to [0,1]. Alpha is kept.
func (c Color) Scale(f float64) Color {
	return Color{
		R: clamp01(c.R * f),
		G: clamp01(c.G * f),
		B: clamp01(c.B * f),
		A: c.A,
	}
}

func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// At maps a normalized signal to a color with a cosine palette: R, G and B are
// the channel phases, Multiplier shifts all three.
func (p Palette) At(t float64) Color {
	ch := func(phase float64) float64 {
		return clamp01(0.5 + 0.5*math.Cos(2*math.Pi*(t+phase+p.Multiplier)))
	}
	return Color{R: ch(p.R), G: ch(p.G), B: ch(p.B), A: 1}
}

// Signal is the normalized [0,1] coloring signal of s under cfg.Coloring.
// The height field uses the same value, so it ignores the interior rule.
func Signal(cfg *Config, s Sample) float64 {
	switch cfg.Coloring {
	case ColorIteration:
		return clamp01(float64(s.Iterations) / float64(cfg.MaxIter))
	case ColorStripe:
		return clamp01(s.Stripe)
	case ColorTrap:
		if d, ok := s.MinTrap(); ok {
			return clamp01(1 / (1 + d))
		}
	}
	return clamp01(s.Smooth / float64(cfg.MaxIter))
}

// Resolve is the Color Resolver. Orbits that never escape resolve to Interior
// regardless of the coloring mode.
func Resolve(cfg *Config, s Sample) Color {
	if !s.Escaped {
		return Interior
	}
	t := math.Pow(Signal(cfg, s), cfg.Palette.Contrast)
	return cfg.Palette.At(t)
}
