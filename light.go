package fractal

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a point light circling Base. Angle and Position are the animation
// state; the caller owns them and advances them between frames.
type Light struct {
	Base       mgl32.Vec3
	Radius     float32
	DeltaAngle float32 // radians per animation step
	Power      float32 // falloff exponent, 1..3
	Ambient    float32 // baseline intensity, 0..1
	Height     float32

	Angle    float32
	Position mgl32.Vec3
}

// DefaultLight is the light setup of the 3D view.
func DefaultLight() Light {
	l := Light{
		Base:       mgl32.Vec3{20, 1, 0},
		Radius:     50,
		DeltaAngle: 0.002,
		Power:      1.3,
		Ambient:    0.1,
		Height:     30,
	}
	return l.At(0)
}

func (l Light) Validate() error {
	if !(l.Power >= 1 && l.Power <= 3) {
		return invalid("light.power", "must be within [1,3], got %v", l.Power)
	}
	if !(l.Ambient >= 0 && l.Ambient <= 1) {
		return invalid("light.ambient", "must be within [0,1], got %v", l.Ambient)
	}
	return nil
}

// At returns l placed at angle a on its orbit.
func (l Light) At(a float32) Light {
	s, c := math.Sincos(float64(a))
	l.Angle = a
	l.Position = l.Base.Add(mgl32.Vec3{l.Radius * float32(c), l.Radius * float32(s), l.Height})
	return l
}

// Advance returns the light one animation step later.
func (l Light) Advance() Light {
	return l.At(l.Angle + l.DeltaAngle)
}

// Intensity is ambient + (1-ambient)·max(0, n·L)^power, L pointing from pos to the light.
func (l Light) Intensity(pos, normal mgl32.Vec3) float32 {
	amb := min(max(l.Ambient, 0), 1)
	toLight := l.Position.Sub(pos)
	if toLight.LenSqr() == 0 || normal.LenSqr() == 0 {
		return amb
	}
	d := normal.Normalize().Dot(toLight.Normalize())
	if d <= 0 {
		return amb
	}
	i := amb + (1-amb)*float32(math.Pow(float64(d), float64(l.Power)))
	return min(i, 1)
}

// Shade returns c lit at pos with the given surface normal.
func (l Light) Shade(c Color, pos, normal mgl32.Vec3) Color {
	return c.Scale(float64(l.Intensity(pos, normal)))
}
