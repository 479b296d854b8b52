package fractal

import (
	"fmt"
	"math"
	"math/cmplx"
)

// VariationKind enumerates the iteration formulas.
type VariationKind int

const (
	KindMandelbrot VariationKind = iota
	KindFoam
	KindChicken
	KindVariation1
	KindVariation2
	KindVariation3
	KindVariation4

	NumVariations = int(KindVariation4) + 1
)

func (k VariationKind) String() string {
	switch k {
	case KindMandelbrot:
		return "mandelbrot"
	case KindFoam:
		return "foam"
	case KindChicken:
		return "chicken"
	case KindVariation1:
		return "variation1"
	case KindVariation2:
		return "variation2"
	case KindVariation3:
		return "variation3"
	case KindVariation4:
		return "variation4"
	}
	return fmt.Sprintf("VariationKind(%d)", int(k))
}

func (k VariationKind) valid() bool { return k >= 0 && int(k) < NumVariations }

// Variation is one escape-time update rule together with its own parameters.
// The set of variations is closed: construct them with NewVariation or the
// exported struct types.
type Variation interface {
	Kind() VariationKind
	// Degree is the asymptotic growth exponent used by the smooth iteration count.
	Degree() float64

	start(c complex128) orbitState
	step(o *orbitState, c complex128)
	validate() error
}

// orbitState is z plus the auxiliary sequence some formulas carry.
type orbitState struct {
	z, w complex128
}

// VariationParams is the flat parameter form used on the wire and by NewVariation.
// Fields a variation does not use are ignored.
type VariationParams struct {
	Power float64 `json:"power,omitempty"`
	Q     float64 `json:"q,omitempty"`
	W     float64 `json:"w,omitempty"`
}

// DefaultVariationParams are the reset values of the explorer.
var DefaultVariationParams = VariationParams{Power: 2, Q: -0.5, W: 0.2}

// NewVariation builds the variation of the given kind.
func NewVariation(kind VariationKind, p VariationParams) (Variation, error) {
	var v Variation
	switch kind {
	case KindMandelbrot:
		v = Mandelbrot{Power: p.Power}
	case KindFoam:
		v = Foam{Power: p.Power, Q: p.Q, W: p.W}
	case KindChicken:
		v = Chicken{}
	case KindVariation1:
		v = BurningShip{}
	case KindVariation2:
		v = Tricorn{}
	case KindVariation3:
		v = Perpendicular{}
	case KindVariation4:
		v = Magnet{}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariation, int(kind))
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// ParamsOf extracts the flat parameters of v.
func ParamsOf(v Variation) VariationParams {
	switch v := v.(type) {
	case Mandelbrot:
		return VariationParams{Power: v.Power}
	case Foam:
		return VariationParams{Power: v.Power, Q: v.Q, W: v.W}
	}
	return VariationParams{}
}

// Mandelbrot is z ← z^Power + c starting at the origin.
type Mandelbrot struct {
	Power float64
}

func (Mandelbrot) Kind() VariationKind { return KindMandelbrot }
func (m Mandelbrot) Degree() float64   { return m.Power }

func (Mandelbrot) start(complex128) orbitState { return orbitState{} }

func (m Mandelbrot) step(o *orbitState, c complex128) {
	o.z = pow(o.z, m.Power) + c
}

func (m Mandelbrot) validate() error { return validatePower(m.Power) }

// pow is z^p with a fast path for the square.
func pow(z complex128, p float64) complex128 {
	if p == 2 {
		return z * z
	}
	return cmplx.Pow(z, complex(p, 0))
}

func validatePower(p float64) error {
	if !(p > 0) || math.IsInf(p, 0) {
		return invalid("power", "must be positive and finite, got %v", p)
	}
	return nil
}

// Foam is the "Mandelbrot foam" pair recurrence
//
//	z ← z^Power + w² + c
//	w ← Q·w / z
//
// seeded with z = 1, w = W.
type Foam struct {
	Power float64
	Q, W  float64
}

func (Foam) Kind() VariationKind { return KindFoam }
func (f Foam) Degree() float64   { return f.Power }

func (f Foam) start(complex128) orbitState {
	return orbitState{z: 1, w: complex(f.W, 0)}
}

func (f Foam) step(o *orbitState, c complex128) {
	z, w := o.z, o.w
	o.z = pow(z, f.Power) + w*w + c
	o.w = complex(f.Q, 0) * w / z
}

func (f Foam) validate() error {
	if err := validatePower(f.Power); err != nil {
		return err
	}
	if !isFinite(f.Q) || !isFinite(f.W) {
		return invalid("foam", "q and w must be finite")
	}
	return nil
}

// Chicken folds the real part of z²: z ← |Re z²| + i·Im z² + c.
type Chicken struct{}

func (Chicken) Kind() VariationKind         { return KindChicken }
func (Chicken) Degree() float64             { return 2 }
func (Chicken) start(complex128) orbitState { return orbitState{} }
func (Chicken) validate() error             { return nil }

func (Chicken) step(o *orbitState, c complex128) {
	x, y := real(o.z), imag(o.z)
	o.z = complex(math.Abs(x*x-y*y)+real(c), 2*x*y+imag(c))
}

// BurningShip folds both components before squaring: z ← (|x| + i|y|)² + c.
type BurningShip struct{}

func (BurningShip) Kind() VariationKind         { return KindVariation1 }
func (BurningShip) Degree() float64             { return 2 }
func (BurningShip) start(complex128) orbitState { return orbitState{} }
func (BurningShip) validate() error             { return nil }

func (BurningShip) step(o *orbitState, c complex128) {
	x, y := math.Abs(real(o.z)), math.Abs(imag(o.z))
	o.z = complex(x*x-y*y+real(c), 2*x*y+imag(c))
}

// Tricorn (Mandelbar) squares the conjugate: z ← conj(z)² + c.
type Tricorn struct{}

func (Tricorn) Kind() VariationKind         { return KindVariation2 }
func (Tricorn) Degree() float64             { return 2 }
func (Tricorn) start(complex128) orbitState { return orbitState{} }
func (Tricorn) validate() error             { return nil }

func (Tricorn) step(o *orbitState, c complex128) {
	z := cmplx.Conj(o.z)
	o.z = z*z + c
}

// Perpendicular folds only the real part inside the cross term:
// z ← (x² - y²) - 2i·|x|·y + c.
type Perpendicular struct{}

func (Perpendicular) Kind() VariationKind         { return KindVariation3 }
func (Perpendicular) Degree() float64             { return 2 }
func (Perpendicular) start(complex128) orbitState { return orbitState{} }
func (Perpendicular) validate() error             { return nil }

func (Perpendicular) step(o *orbitState, c complex128) {
	x, y := real(o.z), imag(o.z)
	o.z = complex(x*x-y*y+real(c), -2*math.Abs(x)*y+imag(c))
}

// Magnet is the type I magnet map z ← ((z² + c - 1) / (2z + c - 2))².
// Orbits attracted to z = 1 never escape.
type Magnet struct{}

func (Magnet) Kind() VariationKind         { return KindVariation4 }
func (Magnet) Degree() float64             { return 2 }
func (Magnet) start(complex128) orbitState { return orbitState{} }
func (Magnet) validate() error             { return nil }

func (Magnet) step(o *orbitState, c complex128) {
	q := (o.z*o.z + c - 1) / (2*o.z + c - 2)
	o.z = q * q
}
