package hohmann

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

// VisViva returns the orbital speed at radius r on an orbit of semi-major axis a
// around a body of gravitational parameter μ: sqrt(μ(2/r - 1/a)).
// For a circular orbit, a = r.
func VisViva(r, a, μ float64) (float64, error) {
	if !(r > 0) || !(a > 0) || !(μ > 0) {
		return 0, fmt.Errorf("%w: vis-viva requires positive r, a and μ (r=%g a=%g μ=%g)", ErrNumeric, r, a, μ)
	}
	ξ := 2/r - 1/a
	if ξ < 0 {
		return 0, fmt.Errorf("%w: radius %g unreachable on an orbit of semi-major axis %g", ErrNumeric, r, a)
	}
	return math.Sqrt(μ * ξ), nil
}

// validRadius returns whether r is a usable orbit radius.
func validRadius(r float64) bool {
	return r > 0 && !math.IsInf(r, 1)
}

// CircularSpeed returns the speed on a circular orbit of radius r.
func CircularSpeed(r, μ float64) (float64, error) {
	return VisViva(r, r, μ)
}

// Radii2ae returns the semi major axis and the eccentricty from the radii.
// The radii may be provided in any order.
func Radii2ae(r1, r2 float64) (a, e float64) {
	rP, rA := math.Min(r1, r2), math.Max(r1, r2)
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}

// TransferPlan is the Hohmann transfer between two coplanar circular orbits.
// It is computed once per transfer and never modified.
type TransferPlan struct {
	Body   CentralBody
	R1, R2 float64 // initial and target radii
	A, E   float64 // transfer ellipse semi-major axis and eccentricity
	V1, V2 float64 // circular speeds at R1 and R2
	// Transfer ellipse speeds at its periapsis (min(R1,R2)) and apoapsis.
	VPeri, VApo float64
	// Transfer ellipse speeds at R1 and at R2.
	VDeparture, VArrival float64
	ΔV1, ΔV2             float64       // signed, applied at R1 then at R2
	TOF                  time.Duration // time of flight, half the transfer period
}

// SolveHohmann computes the Hohmann transfer from the circular orbit of radius r1
// to the one of radius r2. Equal radii give a degenerate, zero Δv, transfer.
// To get final computations:
// ΔV1 = VisViva(r1, a) - v1
// ΔV2 = v2 - VisViva(r2, a)
func SolveHohmann(body CentralBody, r1, r2 float64) (TransferPlan, error) {
	if !validRadius(r1) || !validRadius(r2) {
		return TransferPlan{}, fmt.Errorf("%w: orbit radius must be finite and greater than 0 (r1=%g r2=%g)", ErrConfiguration, r1, r2)
	}
	μ := body.GM()
	p := TransferPlan{Body: body, R1: r1, R2: r2}
	p.A, p.E = Radii2ae(r1, r2)
	var err error
	if p.V1, err = CircularSpeed(r1, μ); err != nil {
		return TransferPlan{}, err
	}
	if p.V2, err = CircularSpeed(r2, μ); err != nil {
		return TransferPlan{}, err
	}
	if p.VPeri, err = VisViva(math.Min(r1, r2), p.A, μ); err != nil {
		return TransferPlan{}, err
	}
	if p.VApo, err = VisViva(math.Max(r1, r2), p.A, μ); err != nil {
		return TransferPlan{}, err
	}
	if p.VDeparture, err = VisViva(r1, p.A, μ); err != nil {
		return TransferPlan{}, err
	}
	if p.VArrival, err = VisViva(r2, p.A, μ); err != nil {
		return TransferPlan{}, err
	}
	p.ΔV1 = p.VDeparture - p.V1
	p.ΔV2 = p.V2 - p.VArrival
	p.TOF = time.Duration(math.Pi * math.Sqrt(math.Pow(p.A, 3)/μ) * float64(time.Second))
	return p, nil
}

// Outbound returns whether this transfer raises the orbit.
func (p TransferPlan) Outbound() bool {
	return p.R2 >= p.R1
}

// Degenerate returns whether both radii are the same, i.e. there is nothing to do.
func (p TransferPlan) Degenerate() bool {
	return scalar.EqualWithinRel(p.R1, p.R2, 1e-15)
}

// ArgPeriapsis returns the angle between the departure point and the periapsis
// of the transfer ellipse: zero when raising the orbit (departure at
// periapsis), π when lowering it (departure at apoapsis).
func (p TransferPlan) ArgPeriapsis() float64 {
	if p.Outbound() {
		return 0
	}
	return math.Pi
}

// TotalΔv returns the sum of the magnitudes of both burns.
func (p TransferPlan) TotalΔv() float64 {
	return math.Abs(p.ΔV1) + math.Abs(p.ΔV2)
}

// Conic returns the transfer ellipse.
func (p TransferPlan) Conic() (Conic, error) {
	return NewConic(p.A, p.E, p.Body.GM())
}

// Arc returns n points along the transfer half-ellipse, from the departure
// point to the arrival point, in the frame where the departure point lies at
// longitude λd.
func (p TransferPlan) Arc(n int, λd float64) ([]Vec2, error) {
	c, err := p.Conic()
	if err != nil {
		return nil, err
	}
	ω := p.ArgPeriapsis()
	return c.Trace(ω, ω+math.Pi, n, λd+ω)
}

// String implements the Stringer interface.
func (p TransferPlan) String() string {
	return fmt.Sprintf("r1=%.6g r2=%.6g a=%.6g e=%.4f v1=%.3f v2=%.3f Δv1=%+.3f Δv2=%+.3f tof=%s", p.R1, p.R2, p.A, p.E, p.V1, p.V2, p.ΔV1, p.ΔV2, p.TOF)
}
