package hohmann

import (
	"fmt"
	"math"

	"github.com/ChristopherRabotin/hohmann/integrator"
)

// TwoBody numerically integrates the planar two-body problem around a central
// body. It implements integrator.Integrable.
type TwoBody struct {
	body  CentralBody
	state StateVector
	steps uint64
}

// NewTwoBody returns an integrable starting at sv, to be stepped the provided number of times.
func NewTwoBody(body CentralBody, sv StateVector, steps uint64) *TwoBody {
	return &TwoBody{body: body, state: sv, steps: steps}
}

// State returns the current state.
func (tb *TwoBody) State() StateVector {
	return tb.state
}

// GetState returns the state as [x, y, vx, vy].
func (tb *TwoBody) GetState() []float64 {
	return []float64{tb.state.R.X, tb.state.R.Y, tb.state.V.X, tb.state.V.Y}
}

// SetState sets the state from [x, y, vx, vy].
func (tb *TwoBody) SetState(i uint64, s []float64) {
	tb.state = StateVector{R: Vec2{s[0], s[1]}, V: Vec2{s[2], s[3]}}
}

// Stop stops after the configured number of steps.
func (tb *TwoBody) Stop(i uint64) bool {
	return i >= tb.steps
}

// Func returns the derivative of the state, i.e. [vx, vy, ax, ay] with a = -μ r/|r|³.
func (tb *TwoBody) Func(t float64, s []float64) []float64 {
	r := math.Hypot(s[0], s[1])
	f := -tb.body.GM() / (r * r * r)
	return []float64{s[2], s[3], f * s[0], f * s[1]}
}

// PropagateTwoBody integrates sv for duration seconds with an RK4 of the given
// number of steps, and returns the final state.
func PropagateTwoBody(body CentralBody, sv StateVector, duration float64, steps int) (StateVector, error) {
	if steps <= 0 {
		return StateVector{}, fmt.Errorf("%w: steps must be positive (got %d)", ErrConfiguration, steps)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return StateVector{}, fmt.Errorf("%w: duration must be positive (got %g)", ErrConfiguration, duration)
	}
	if sv.R.Norm() == 0 {
		return StateVector{}, fmt.Errorf("%w: initial position is at the centre of %s", ErrConfiguration, body)
	}
	tb := NewTwoBody(body, sv, uint64(steps))
	if _, _, err := integrator.NewRK4(0, duration/float64(steps), tb).Solve(); err != nil {
		return StateVector{}, fmt.Errorf("%w: %s", ErrNumeric, err)
	}
	return tb.State(), nil
}
