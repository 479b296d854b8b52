// Package cliconfig binds a fractal.Config to command line flags shared by the
// executables under cmd/.
package cliconfig

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	fractal "github.com/marben/dist_fractal"
)

// Flags collects the flag values; call Config after flag parsing.
type Flags struct {
	cfg       fractal.Config
	region    string
	region3D  string
	variation int
	params    fractal.VariationParams
	coloring  string
	points    trapList
	lines     trapList
}

// Register defines the configuration flags on fs, defaulting to fractal.DefaultConfig.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{cfg: fractal.DefaultConfig(), params: fractal.DefaultVariationParams}
	c := &f.cfg

	fs.IntVar(&c.Grid.XSize, "width", c.Grid.XSize, "Image width in pixels.")
	fs.IntVar(&c.Grid.YSize, "height", c.Grid.YSize, "Image height in pixels.")
	fs.StringVar(&f.region, "region", "full", "Landmark region: "+strings.Join(fractal.LandmarkNames(), ", ")+".")

	fs.IntVar(&f.variation, "variation", int(fractal.KindMandelbrot), "Iteration formula 0..6 (mandelbrot, foam, chicken, variation1..4).")
	fs.Float64Var(&f.params.Power, "power", f.params.Power, "Exponent of the mandelbrot and foam variations.")
	fs.Float64Var(&f.params.Q, "foam-q", f.params.Q, "Foam variation q.")
	fs.Float64Var(&f.params.W, "foam-w", f.params.W, "Foam variation w.")

	fs.IntVar(&c.MaxIter, "maxiter", c.MaxIter, "Iteration cap.")
	fs.IntVar(&c.Skip, "skip", c.Skip, "Iterations excluded from the stripe average.")
	fs.Float64Var(&c.EscapeRadius, "escape", c.EscapeRadius, "Escape threshold on |z|².")
	fs.Float64Var(&c.StripeDensity, "stripe", c.StripeDensity, "Stripe density.")

	fs.StringVar(&f.coloring, "coloring", c.Coloring.String(), "Coloring: iteration, smooth, stripe or trap.")
	fs.Float64Var(&c.Palette.Contrast, "contrast", c.Palette.Contrast, "Contrast exponent.")
	fs.Float64Var(&c.Palette.Multiplier, "mult", c.Palette.Multiplier, "Palette phase shift.")
	fs.Float64Var(&c.Palette.R, "r", c.Palette.R, "Red phase.")
	fs.Float64Var(&c.Palette.G, "g", c.Palette.G, "Green phase.")
	fs.Float64Var(&c.Palette.B, "b", c.Palette.B, "Blue phase.")

	f.points = trapList{max: fractal.MaxPointTraps, fields: 2}
	f.lines = trapList{max: fractal.MaxLineTraps, fields: 3}
	fs.Var(&f.points, "ptrap", "Active point trap \"x,y\" (repeat up to 3 times).")
	fs.Var(&f.lines, "ltrap", "Active line trap \"x,y,slope\" (repeat up to 3 times).")

	fs.StringVar(&f.region3D, "region3d", "", "Landmark region of the height field; defaults to -region.")
	fs.IntVar(&c.Grid3D.XSize, "width3d", c.Grid3D.XSize, "Height field samples per row.")
	fs.IntVar(&c.Grid3D.YSize, "height3d", c.Grid3D.YSize, "Height field rows.")
	fs.Float64Var(&c.Height, "relief", c.Height, "Height field scale.")
	fs.Float64Var(&c.Smooth, "smooth", c.Smooth, "Height smoothing blend 0..1.")
	fs.IntVar(&c.SmoothPasses, "smooth-passes", c.SmoothPasses, "Number of smoothing passes.")

	return f
}

// Config assembles and validates the configuration.
func (f *Flags) Config() (fractal.Config, error) {
	cfg := f.cfg

	r, ok := fractal.LandmarkRegion(f.region)
	if !ok {
		return fractal.Config{}, fmt.Errorf("unknown region %q", f.region)
	}
	cfg.Grid.Region = r
	cfg.Grid3D.Region = r
	if f.region3D != "" {
		if cfg.Grid3D.Region, ok = fractal.LandmarkRegion(f.region3D); !ok {
			return fractal.Config{}, fmt.Errorf("unknown region %q", f.region3D)
		}
	}

	v, err := fractal.NewVariation(fractal.VariationKind(f.variation), f.params)
	if err != nil {
		return fractal.Config{}, err
	}
	cfg.Variation = v

	if cfg.Coloring, err = fractal.ParseColoring(f.coloring); err != nil {
		return fractal.Config{}, err
	}

	for i, p := range f.points.traps {
		cfg.Traps.Points[i] = fractal.PointTrap{Active: true, X: p[0], Y: p[1]}
	}
	for i, l := range f.lines.traps {
		cfg.Traps.Lines[i] = fractal.LineTrap{Active: true, X: l[0], Y: l[1], Slope: l[2]}
	}

	if err := cfg.Validate(); err != nil {
		return fractal.Config{}, err
	}
	return cfg, nil
}

// trapList is a repeatable flag of comma separated coordinates.
type trapList struct {
	max    int
	fields int
	traps  [][3]float64
}

func (t *trapList) String() string {
	if t == nil {
		return ""
	}
	parts := make([]string, len(t.traps))
	for i, tr := range t.traps {
		parts[i] = fmt.Sprint(tr[:t.fields])
	}
	return strings.Join(parts, " ")
}

func (t *trapList) Set(s string) error {
	if len(t.traps) == t.max {
		return fmt.Errorf("at most %d traps", t.max)
	}
	fields := strings.Split(s, ",")
	if len(fields) != t.fields {
		return fmt.Errorf("want %d comma separated numbers, got %q", t.fields, s)
	}
	var tr [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return err
		}
		tr[i] = v
	}
	t.traps = append(t.traps, tr)
	return nil
}
