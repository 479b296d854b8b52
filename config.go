package fractal

import (
	"math"
)

// Version is the current Config schema tag.
const Version = 1

// Grid is an affine mapping from an XSize x YSize sample lattice onto a Region.
type Grid struct {
	XSize, YSize int
	Region
}

// Step returns the size of one grid cell in the complex plane.
// It is always derived from the bounds and never stored.
func (g Grid) Step() (dx, dy float64) {
	return g.Region.Width() / float64(g.XSize), g.Region.Height() / float64(g.YSize)
}

// Point maps a sample index to its coordinate in the complex plane.
func (g Grid) Point(px, py int) complex128 {
	dx, dy := g.Step()
	return complex(g.Xmin+float64(px)*dx, g.Ymin+float64(py)*dy)
}

// Len is the number of samples in the grid.
func (g Grid) Len() int { return g.XSize * g.YSize }

func (g Grid) validate(name string) error {
	switch {
	case g.XSize <= 0 || g.YSize <= 0:
		return invalid(name, "size must be positive, got %dx%d", g.XSize, g.YSize)
	case !g.finite():
		return invalid(name, "bounds must be finite")
	case g.Xmin >= g.Xmax:
		return invalid(name, "xmin %v must be below xmax %v", g.Xmin, g.Xmax)
	case g.Ymin >= g.Ymax:
		return invalid(name, "ymin %v must be below ymax %v", g.Ymin, g.Ymax)
	}
	return nil
}

// Palette holds the color weights applied to the normalized coloring signal.
type Palette struct {
	// Per-channel phases of the cosine palette.
	R, G, B float64
	// Exponent applied to the normalized signal.
	Contrast float64
	// Global phase shift of the palette.
	Multiplier float64
}

// Config is the Configuration Record: one immutable snapshot of every parameter
// an evaluation depends on. Copying a Config by value yields an independent snapshot.
type Config struct {
	Version int

	// Grid of the 2D color field and Grid3D of the height field. The two are
	// configured independently and share one orbit evaluator.
	Grid   Grid
	Grid3D Grid

	Variation Variation `json:"-"`

	MaxIter       int
	Skip          int // iterations excluded from the stripe average
	EscapeRadius  float64
	StripeDensity float64

	Coloring Coloring
	Palette  Palette
	Traps    Traps

	// Height scales the normalized signal into mesh height.
	Height float64
	// Smooth blends each height towards its 4-neighbor average (0 = raw, 1 = average).
	Smooth       float64
	SmoothPasses int
}

// DefaultConfig returns the reset state of the explorer: classic Mandelbrot over the full set.
func DefaultConfig() Config {
	return Config{
		Version:       Version,
		Grid:          Grid{XSize: 1024, YSize: 1024, Region: FullSet},
		Grid3D:        Grid{XSize: 256, YSize: 256, Region: FullSet},
		Variation:     Mandelbrot{Power: 2},
		MaxIter:       200,
		Skip:          20,
		EscapeRadius:  4,
		StripeDensity: -1.343,
		Coloring:      ColorSmooth,
		Palette: Palette{
			R:          0,
			G:          0.4,
			B:          0.7,
			Contrast:   4,
			Multiplier: -0.381,
		},
		// inactive until toggled
		Traps: Traps{
			Points: [MaxPointTraps]PointTrap{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}},
			Lines:  [MaxLineTraps]LineTrap{{Slope: 0}, {Slope: 1}, {Slope: -1}},
		},
		Height:       10,
		Smooth:       1,
		SmoothPasses: 1,
	}
}

// Validate reports whether the 2D part of the configuration can be evaluated.
// The returned error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.Grid.validate("grid"); err != nil {
		return err
	}
	if c.MaxIter < 1 {
		return invalid("maxIter", "must be at least 1, got %d", c.MaxIter)
	}
	if c.Skip < 0 {
		return invalid("skip", "must not be negative, got %d", c.Skip)
	}
	if !(c.EscapeRadius > 0) || math.IsInf(c.EscapeRadius, 0) {
		return invalid("escapeRadius", "must be positive and finite, got %v", c.EscapeRadius)
	}
	if !isFinite(c.StripeDensity) {
		return invalid("stripeDensity", "must be finite, got %v", c.StripeDensity)
	}
	if c.Variation == nil {
		return invalid("variation", "not set")
	}
	if err := c.Variation.validate(); err != nil {
		return err
	}
	if !c.Coloring.valid() {
		return ErrUnknownColoring
	}
	if err := c.Palette.validate(); err != nil {
		return err
	}
	return c.Traps.validate()
}

// Validate3D validates the configuration for a height-field build.
func (c *Config) Validate3D() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.Grid3D.validate("grid3D"); err != nil {
		return err
	}
	if !isFinite(c.Height) {
		return invalid("height", "must be finite, got %v", c.Height)
	}
	if !(c.Smooth >= 0 && c.Smooth <= 1) {
		return invalid("smooth", "must be within [0,1], got %v", c.Smooth)
	}
	if c.SmoothPasses < 0 {
		return invalid("smoothPasses", "must not be negative, got %d", c.SmoothPasses)
	}
	return nil
}

func (p Palette) validate() error {
	for _, v := range [...]float64{p.R, p.G, p.B, p.Multiplier} {
		if !isFinite(v) {
			return invalid("palette", "weights must be finite")
		}
	}
	if !(p.Contrast >= 0) || math.IsInf(p.Contrast, 0) {
		return invalid("contrast", "must be non-negative and finite, got %v", p.Contrast)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
