package fractal

import (
	"fmt"
	"math"
)

// Fixed trap capacity: at most three point traps and three line traps.
const (
	MaxPointTraps = 3
	MaxLineTraps  = 3
	NumTraps      = MaxPointTraps + MaxLineTraps
)

// Trap is a geometric object the orbit is measured against.
type Trap interface {
	IsActive() bool
	// Distance from z to the trap.
	Distance(z complex128) float64
}

// PointTrap measures the Euclidean distance to (X, Y).
type PointTrap struct {
	Active bool
	X, Y   float64
}

func (t PointTrap) IsActive() bool { return t.Active }

func (t PointTrap) Distance(z complex128) float64 {
	return math.Hypot(real(z)-t.X, imag(z)-t.Y)
}

// LineTrap measures the perpendicular distance to the infinite line through
// (X, Y) with the given Slope. An infinite slope is a vertical line; on the
// wire it is sent as Vertical and decodes to +Inf.
type LineTrap struct {
	Active bool
	X, Y   float64
	Slope  float64
}

func (t LineTrap) IsActive() bool { return t.Active }

func (t LineTrap) Distance(z complex128) float64 {
	dx, dy := real(z)-t.X, imag(z)-t.Y
	if math.IsInf(t.Slope, 0) {
		return math.Abs(dx)
	}
	return math.Abs(t.Slope*dx-dy) / math.Hypot(t.Slope, 1)
}

// Traps is the ordered trap collection. Sample.Traps and At use the same order:
// point traps 0..2 first, then line traps 0..2.
type Traps struct {
	Points [MaxPointTraps]PointTrap
	Lines  [MaxLineTraps]LineTrap
}

// At returns trap i of the combined ordering. Like slice indexing it panics
// unless 0 <= i < NumTraps; the Controller accessors check the index instead.
func (ts *Traps) At(i int) Trap {
	if i < 0 || i >= NumTraps {
		panic(fmt.Sprintf("trap index %d out of range [0,%d)", i, NumTraps))
	}
	if i < MaxPointTraps {
		return ts.Points[i]
	}
	return ts.Lines[i-MaxPointTraps]
}

// AnyActive reports whether at least one trap is active.
func (ts *Traps) AnyActive() bool {
	for i := range NumTraps {
		if ts.At(i).IsActive() {
			return true
		}
	}
	return false
}

func (ts *Traps) validate() error {
	for i, p := range ts.Points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return invalid("pointTrap", "trap %d has non-finite coordinates", i)
		}
	}
	for i, l := range ts.Lines {
		if !isFinite(l.X) || !isFinite(l.Y) || math.IsNaN(l.Slope) {
			return invalid("lineTrap", "trap %d has non-finite coordinates", i)
		}
	}
	return nil
}
