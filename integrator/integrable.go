package integrator

// Integrable is a first order ODE system y' = f(t, y) whose state is owned by
// the implementation. The integrator reads the state once per step with
// GetState, and hands back the next state with SetState.
type Integrable interface {
	// GetState returns the current state vector.
	GetState() []float64
	// SetState stores the state computed at iteration i.
	SetState(i uint64, s []float64)
	// Stop returns whether the integration ends before iteration i.
	Stop(i uint64) bool
	// Func returns the derivative of s at time t, with the same length as s.
	Func(t float64, s []float64) []float64
}
