package fractal

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Region of the complex plane covered by a sampling grid.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Full view of the classic set, the default region
	FullSet = Region{
		Xmin: -2,
		Xmax: 1,
		Ymin: -1.5,
		Ymax: 1.5,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var landmarks = map[string]Region{
	"full":       FullSet,
	"seahorse":   SeahorseValley,
	"elephant":   ElephantValley,
	"spiral":     SpiralMinibrot,
	"triple":     TripleSpiral,
	"dragon":     ValleyOfTheDragon,
	"minispiral": MinibrotInMiniSpiral,
}

// LandmarkRegion looks up a landmark by its short name (case-insensitive).
func LandmarkRegion(name string) (Region, bool) {
	r, ok := landmarks[strings.ToLower(name)]
	return r, ok
}

// LandmarkNames lists the names accepted by LandmarkRegion.
func LandmarkNames() []string {
	return slices.Sorted(maps.Keys(landmarks))
}

func (r Region) Width() float64  { return r.Xmax - r.Xmin }
func (r Region) Height() float64 { return r.Ymax - r.Ymin }

// Center returns the midpoint of the region.
func (r Region) Center() (x, y float64) {
	return (r.Xmin + r.Xmax) / 2, (r.Ymin + r.Ymax) / 2
}

// Pan moves the region by a percentage of its span. Positive py moves the
// view up, which lowers the region on screen rows counted from the top.
func (r Region) Pan(px, py float64) Region {
	mx := r.Width() * px / 100
	my := -r.Height() * py / 100
	return Region{
		Xmin: r.Xmin - mx,
		Xmax: r.Xmax - mx,
		Ymin: r.Ymin - my,
		Ymax: r.Ymax - my,
	}
}

// Zoom scales the span about the center by (1 - amount). Positive amounts zoom in.
func (r Region) Zoom(amount float64) Region {
	k := 1 - amount
	w := r.Width() * k
	h := r.Height() * k
	xc, yc := r.Center()
	return Region{
		Xmin: xc - w/2,
		Xmax: xc + w/2,
		Ymin: yc - h/2,
		Ymax: yc + h/2,
	}
}

func (r Region) finite() bool {
	for _, v := range [...]float64{r.Xmin, r.Xmax, r.Ymin, r.Ymax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
