package hohmann

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	eccentricityε = 5e-5
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
)

// Conic defines a closed planar conic (circle or ellipse) about a central body,
// via its semi-major axis a, eccentricity e and the body's μ.
type Conic struct {
	a, e, μ float64
}

// NewConic returns a new conic; a and μ must be positive and e within [0, 1).
func NewConic(a, e, μ float64) (Conic, error) {
	if !(a > 0) {
		return Conic{}, fmt.Errorf("%w: semi-major axis must be positive (got %g)", ErrConfiguration, a)
	}
	if !(e >= 0 && e < 1) {
		return Conic{}, fmt.Errorf("%w: eccentricity must be within [0, 1) (got %g)", ErrConfiguration, e)
	}
	if !(μ > 0) {
		return Conic{}, fmt.Errorf("%w: gravitational parameter must be positive (got %g)", ErrConfiguration, μ)
	}
	return Conic{a, e, μ}, nil
}

// NewCircular returns the circular orbit of radius r.
func NewCircular(r float64, body CentralBody) (Conic, error) {
	return NewConic(r, 0, body.GM())
}

// SemiMajorAxis returns a.
func (c Conic) SemiMajorAxis() float64 {
	return c.a
}

// Eccentricity returns e.
func (c Conic) Eccentricity() float64 {
	return c.e
}

// GM returns μ.
func (c Conic) GM() float64 {
	return c.μ
}

// Circular returns whether the conic is a circle (within eccentricityε).
func (c Conic) Circular() bool {
	return c.e < eccentricityε
}

// SemiParameter returns the semi parameter p = a(1-e²).
func (c Conic) SemiParameter() float64 {
	return c.a * (1 - c.e*c.e)
}

// Apoapsis returns the apoapsis radius.
func (c Conic) Apoapsis() float64 {
	return c.a * (1 + c.e)
}

// Periapsis returns the periapsis radius.
func (c Conic) Periapsis() float64 {
	return c.a * (1 - c.e)
}

// H returns the norm of the specific angular momentum.
func (c Conic) H() float64 {
	return math.Sqrt(c.μ * c.SemiParameter())
}

// Energyξ returns the specific mechanical energy ξ.
func (c Conic) Energyξ() float64 {
	return -c.μ / (2 * c.a)
}

// PeriodSeconds returns the orbital period in seconds.
func (c Conic) PeriodSeconds() float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(c.a, 3)/c.μ)
}

// Period returns the period of this orbit.
func (c Conic) Period() time.Duration {
	return time.Duration(c.PeriodSeconds() * float64(time.Second))
}

// CenterOffset returns the distance from the focus to the centre of the
// ellipse, a·e. Renderers drawing relative to the ellipse centre subtract it
// along the apse line.
func (c Conic) CenterOffset() float64 {
	return c.a * c.e
}

// Radius returns the radius at true anomaly ν.
func (c Conic) Radius(ν float64) float64 {
	return c.SemiParameter() / (1 + c.e*math.Cos(ν))
}

// StateVector is a focus-centred planar position and velocity.
type StateVector struct {
	R Vec2 `json:"r"`
	V Vec2 `json:"v"`
}

// Speed returns the norm of the velocity.
func (s StateVector) Speed() float64 {
	return s.V.Norm()
}

// Rotate returns the state vector rotated by θ.
func (s StateVector) Rotate(θ float64) StateVector {
	m := R3(θ)
	return StateVector{MxV22(m, s.R), MxV22(m, s.V)}
}

// StateAt returns the position and velocity at true anomaly ν, in the
// perifocal frame (focus at the origin, periapsis along +x). The velocity is
// built from its radial and tangential components, (μ/h)·e·sinν and h/r, which
// holds for circles and ellipses alike.
func (c Conic) StateAt(ν float64) (StateVector, error) {
	r := c.Radius(ν)
	if !(r > 0) || math.IsInf(r, 0) {
		return StateVector{}, fmt.Errorf("%w: invalid radius %g at ν=%g for %s", ErrNumeric, r, ν, c)
	}
	h := c.H()
	if math.IsNaN(h) {
		return StateVector{}, fmt.Errorf("%w: angular momentum is NaN for %s", ErrNumeric, c)
	}
	vr := c.μ / h * c.e * math.Sin(ν)
	vt := h / r
	m := R3(ν)
	return StateVector{R: MxV22(m, Vec2{r, 0}), V: MxV22(m, Vec2{vr, vt})}, nil
}

// SinCosΦfpa returns the flight path angle trig functions (sin and cos).
// WARNING: As per Vallado page 105, use math.Atan2 to get the angle itself.
func (c Conic) SinCosΦfpa(ν float64) (sinΦ, cosΦ float64) {
	sinν, cosν := math.Sincos(ν)
	denom := math.Sqrt(1 + 2*c.e*cosν + c.e*c.e)
	return c.e * sinν / denom, (1 + c.e*cosν) / denom
}

// Trace returns n points of the conic for true anomalies evenly spread in
// [from, to], rotated into the inertial frame by the longitude of periapsis ϖ.
func (c Conic) Trace(from, to float64, n int, ϖ float64) ([]Vec2, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least two points to trace a conic (got %d)", ErrConfiguration, n)
	}
	νs := make([]float64, n)
	floats.Span(νs, from, to)
	m := R3(ϖ)
	pts := make([]Vec2, n)
	for i, ν := range νs {
		sinν, cosν := math.Sincos(ν)
		r := c.Radius(ν)
		pts[i] = MxV22(m, Vec2{r * cosν, r * sinν})
	}
	return pts, nil
}

// String implements the stringer interface (hence the value receiver)
func (c Conic) String() string {
	return fmt.Sprintf("a=%.6g e=%.4f μ=%.6g", c.a, c.e, c.μ)
}

// Equals returns whether two conics are identical.
func (c Conic) Equals(c1 Conic) bool {
	return scalar.EqualWithinRel(c.a, c1.a, 1e-12) &&
		scalar.EqualWithinAbs(c.e, c1.e, eccentricityε) &&
		scalar.EqualWithinRel(c.μ, c1.μ, 1e-12)
}
