package integrator

import (
	"fmt"
	"math"
)

// RK4 defines a classical fourth order Runge-Kutta integrator.
type RK4 struct {
	X0         float64    // The initial x0.
	StepSize   float64    // The step size.
	Integrable Integrable // What is to be integrated.
}

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(x0 float64, stepSize float64, inte Integrable) (r *RK4) {
	if !(stepSize > 0) {
		panic("config StepSize must be positive")
	}
	if inte == nil {
		panic("config Integrable may not be nil")
	}
	r = &RK4{X0: x0, StepSize: stepSize, Integrable: inte}
	return
}

// Solve solves the configured RK4.
// Returns the number of iterations performed and the last X_i, or an error if
// the ODE function returned a state of the wrong size or a non finite value.
func (r *RK4) Solve() (uint64, float64, error) {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)

	iterNum := uint64(0)
	xi := r.X0
	halfStep := r.StepSize * half
	for !r.Integrable.Stop(iterNum) {
		state := r.Integrable.GetState()
		newState := make([]float64, len(state))
		k1 := make([]float64, len(state))
		//k2, k3, k4 are used as buffers AND result variables.
		k2 := make([]float64, len(state))
		k3 := make([]float64, len(state))
		k4 := make([]float64, len(state))
		tState := make([]float64, len(state))

		eval := func(t float64, s []float64) ([]float64, error) {
			d := r.Integrable.Func(t, s)
			if len(d) != len(s) {
				return nil, fmt.Errorf("iteration %d: derivative has %d components, state has %d", iterNum, len(d), len(s))
			}
			return d, nil
		}

		// Compute the k's.
		d, err := eval(xi, state)
		if err != nil {
			return iterNum, xi, err
		}
		for i, y := range d {
			k1[i] = y * r.StepSize
			tState[i] = state[i] + k1[i]*half
		}
		if d, err = eval(xi+halfStep, tState); err != nil {
			return iterNum, xi, err
		}
		for i, y := range d {
			k2[i] = y * r.StepSize
			tState[i] = state[i] + k2[i]*half
		}
		if d, err = eval(xi+halfStep, tState); err != nil {
			return iterNum, xi, err
		}
		for i, y := range d {
			k3[i] = y * r.StepSize
			tState[i] = state[i] + k3[i]
		}
		if d, err = eval(xi+r.StepSize, tState); err != nil {
			return iterNum, xi, err
		}
		for i, y := range d {
			k4[i] = y * r.StepSize
			newState[i] = state[i] + oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i])
			if math.IsNaN(newState[i]) || math.IsInf(newState[i], 0) {
				return iterNum, xi, fmt.Errorf("iteration %d: component %d is not finite", iterNum, i)
			}
		}
		r.Integrable.SetState(iterNum, newState)

		xi += r.StepSize
		iterNum++ // Don't forget to increment the number of iterations.
	}

	return iterNum, xi, nil
}
