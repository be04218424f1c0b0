package hohmann

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	keplerε       = 1e-12
	keplerMaxIter = 50
)

// SolveKepler solves Kepler's equation M = E - e·sinE for the eccentric
// anomaly E using Newton-Raphson iterations. The returned E is in [0, 2π).
func SolveKepler(M, e float64) (float64, error) {
	if !(e >= 0 && e < 1) {
		return 0, fmt.Errorf("%w: Kepler's equation requires e within [0, 1) (got %g)", ErrNumeric, e)
	}
	if math.IsNaN(M) || math.IsInf(M, 0) {
		return 0, fmt.Errorf("%w: invalid mean anomaly %g", ErrNumeric, M)
	}
	M = normalizeAngle(M)
	if e == 0 {
		return M, nil
	}
	E := M
	if e >= 0.8 {
		E = math.Pi
	}
	for i := 0; i < keplerMaxIter; i++ {
		δ := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= δ
		if math.Abs(δ) < keplerε {
			return normalizeAngle(E), nil
		}
	}
	return 0, fmt.Errorf("%w: Kepler's equation did not converge after %d iterations (M=%g e=%g)", ErrNumeric, keplerMaxIter, M, e)
}

// MeanFromEccentric returns the mean anomaly M = E - e·sinE, in [0, 2π).
func MeanFromEccentric(E, e float64) float64 {
	return normalizeAngle(E - e*math.Sin(E))
}

// EccentricToTrue converts the eccentric anomaly to the true anomaly with
// tan(ν/2) = sqrt((1+e)/(1-e))·tan(E/2). The result is in [0, 2π).
func EccentricToTrue(E, e float64) float64 {
	E = normalizeAngle(E)
	if scalar.EqualWithinAbs(E, math.Pi, keplerε) {
		// tan(π/2) is not representable, but both anomalies meet at apoapsis.
		return math.Pi
	}
	return normalizeAngle(2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2)))
}

// TrueToEccentric converts the true anomaly to the eccentric anomaly, in [0, 2π).
func TrueToEccentric(ν, e float64) float64 {
	sinν, cosν := math.Sincos(ν)
	denom := 1 + e*cosν
	sinE := math.Sqrt(1-e*e) * sinν / denom
	cosE := (e + cosν) / denom
	return normalizeAngle(math.Atan2(sinE, cosE))
}

// AnomalyMode selects how an anomaly is advanced with the discrete step index.
type AnomalyMode uint8

const (
	// TimeAccurate advances the mean anomaly linearly, which sweeps equal
	// areas per step (Kepler's second law). The true anomaly is recovered
	// through Kepler's equation.
	TimeAccurate AnomalyMode = iota + 1
	// Illustrative advances the true anomaly linearly. Each (r, v) pair is
	// still consistent with the conic, but steps do not represent equal times.
	Illustrative
	// EccentricLinear advances the eccentric anomaly linearly.
	EccentricLinear
)

func (m AnomalyMode) String() string {
	switch m {
	case TimeAccurate:
		return "time-accurate"
	case Illustrative:
		return "illustrative"
	case EccentricLinear:
		return "eccentric-linear"
	}
	panic("cannot stringify unknown anomaly mode")
}

// ParseAnomalyMode returns the mode from its name.
func ParseAnomalyMode(name string) (AnomalyMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "time-accurate", "mean", "kepler":
		return TimeAccurate, nil
	case "illustrative", "true", "linear":
		return Illustrative, nil
	case "eccentric-linear", "eccentric":
		return EccentricLinear, nil
	default:
		return 0, fmt.Errorf("%w: unknown anomaly mode '%s'", ErrConfiguration, name)
	}
}

// Anomalies groups the three anomalies of a point on a conic.
type Anomalies struct {
	True, Eccentric, Mean float64
}

// At returns the anomalies reached after the given fraction of a revolution,
// starting from periapsis, for a conic of eccentricity e.
func (m AnomalyMode) At(fraction, e float64) (Anomalies, error) {
	θ := twoPi * fraction
	switch m {
	case TimeAccurate:
		E, err := SolveKepler(θ, e)
		if err != nil {
			return Anomalies{}, err
		}
		return Anomalies{EccentricToTrue(E, e), E, normalizeAngle(θ)}, nil
	case Illustrative:
		ν := normalizeAngle(θ)
		E := TrueToEccentric(ν, e)
		return Anomalies{ν, E, MeanFromEccentric(E, e)}, nil
	case EccentricLinear:
		E := normalizeAngle(θ)
		return Anomalies{EccentricToTrue(E, e), E, MeanFromEccentric(E, e)}, nil
	default:
		return Anomalies{}, fmt.Errorf("%w: unknown anomaly mode %d", ErrConfiguration, m)
	}
}

// TrueAnomaly returns only the true anomaly of At.
func (m AnomalyMode) TrueAnomaly(fraction, e float64) (float64, error) {
	a, err := m.At(fraction, e)
	return a.True, err
}
