package fractal

import (
	"math"
)

// Sample is the Orbit Sample of one point: escape state plus the statistics
// collected along the orbit.
type Sample struct {
	Escaped bool
	// Iterations is the iteration index at which the orbit escaped, or MaxIter.
	Iterations int
	// Smooth refines Iterations using the escape modulus; Smooth is in
	// [Iterations, Iterations+1) for escaped orbits and equals MaxIter otherwise.
	Smooth float64
	// Stripe is the stripe average, always within [0,1].
	Stripe float64
	// Traps holds the minimum orbit distance per trap in Traps.At order;
	// +Inf for inactive traps.
	Traps [NumTraps]float64
}

// MinTrap returns the smallest trap distance and whether any trap was measured.
func (s Sample) MinTrap() (float64, bool) {
	d := math.Inf(1)
	for _, v := range s.Traps {
		d = math.Min(d, v)
	}
	return d, !math.IsInf(d, 1)
}

// EvaluatePixel evaluates the 2D grid sample (px, py).
func EvaluatePixel(cfg *Config, px, py int) Sample {
	return Evaluate(cfg, cfg.Grid.Point(px, py))
}

// Evaluate iterates cfg.Variation for the point c. cfg must have passed Validate.
// It is read only, so any number of goroutines may evaluate against one snapshot.
func Evaluate(cfg *Config, c complex128) Sample {
	s := Sample{Iterations: cfg.MaxIter, Smooth: float64(cfg.MaxIter)}
	for i := range s.Traps {
		s.Traps[i] = math.Inf(1)
	}

	v := cfg.Variation
	o := v.start(c)

	var sum, prev float64
	n := 0
	for k := 0; k < cfg.MaxIter; k++ {
		v.step(&o, c)
		z := o.z

		m2 := real(z)*real(z) + imag(z)*imag(z)
		if math.IsNaN(m2) || math.IsInf(m2, 0) {
			// overflow counts as escape at this iteration, without refinement
			s.Escaped = true
			s.Iterations = k
			s.Smooth = float64(k)
			s.Stripe = stripeAverage(sum, n)
			return s
		}

		if k >= cfg.Skip {
			prev = sum
			sum += 0.5*math.Sin(cfg.StripeDensity*math.Atan2(imag(z), real(z))) + 0.5
			n++
		}

		cfg.Traps.measure(z, &s.Traps)

		if m2 > cfg.EscapeRadius {
			s.Escaped = true
			s.Iterations = k
			s.Smooth = smoothCount(k, m2, cfg.EscapeRadius, v.Degree())
			s.Stripe = stripeInterpolated(sum, prev, n, s.Smooth-float64(k))
			return s
		}
	}
	s.Stripe = stripeAverage(sum, n)
	return s
}

// smoothCount is the continuous iteration count
//
//	k + 1 - log(log|z| / log √R) / log d
//
// kept inside [k, k+1).
func smoothCount(k int, m2, radius, degree float64) float64 {
	fk := float64(k)
	if radius <= 1 || degree <= 1 {
		return fk
	}
	ratio := math.Log(m2) / math.Log(radius)
	mu := fk + 1 - math.Log(ratio)/math.Log(degree)
	switch {
	case math.IsNaN(mu) || mu < fk:
		return fk
	case mu >= fk+1:
		return math.Nextafter(fk+1, fk)
	}
	return mu
}

func stripeAverage(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return clamp01(sum / float64(n))
}

// stripeInterpolated blends the averages without and with the last sample by
// the fractional escape count, which removes the banding between iterations.
func stripeInterpolated(sum, prev float64, n int, frac float64) float64 {
	if n < 2 {
		return stripeAverage(sum, n)
	}
	last := sum / float64(n)
	before := prev / float64(n-1)
	return clamp01(before + frac*(last-before))
}

func (ts *Traps) measure(z complex128, d *[NumTraps]float64) {
	for i := range ts.Points {
		if t := &ts.Points[i]; t.Active {
			d[i] = math.Min(d[i], t.Distance(z))
		}
	}
	for i := range ts.Lines {
		if t := &ts.Lines[i]; t.Active {
			j := MaxPointTraps + i
			d[j] = math.Min(d[j], t.Distance(z))
		}
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	case math.IsNaN(v):
		return 0
	}
	return v
}
