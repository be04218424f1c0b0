package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// decay integrates dy/dt = -y from y(0) = 1.
type decay struct {
	state []float64
	steps uint64
}

func (d *decay) GetState() []float64 {
	return d.state
}

func (d *decay) SetState(i uint64, s []float64) {
	d.state = s
}

func (d *decay) Stop(i uint64) bool {
	return i >= d.steps
}

func (d *decay) Func(t float64, s []float64) []float64 {
	return []float64{-s[0]}
}

// oscillator integrates x'' = -x.
type oscillator struct {
	state []float64
	steps uint64
}

func (o *oscillator) GetState() []float64            { return o.state }
func (o *oscillator) SetState(i uint64, s []float64) { o.state = s }
func (o *oscillator) Stop(i uint64) bool             { return i >= o.steps }
func (o *oscillator) Func(t float64, s []float64) []float64 {
	return []float64{s[1], -s[0]}
}

// ramp integrates dy/dt = t, which checks the time fed to each stage.
type ramp struct {
	state []float64
	steps uint64
}

func (r *ramp) GetState() []float64            { return r.state }
func (r *ramp) SetState(i uint64, s []float64) { r.state = s }
func (r *ramp) Stop(i uint64) bool             { return i >= r.steps }
func (r *ramp) Func(t float64, s []float64) []float64 {
	return []float64{t}
}

// broken returns a derivative of the wrong size.
type broken struct{ decay }

func (b *broken) Func(t float64, s []float64) []float64 {
	return []float64{1, 2}
}

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("code did not panic")
		}
	}()
	f()
}

func TestRK4Decay(t *testing.T) {
	d := &decay{state: []float64{1}, steps: 100}
	iterNum, xi, err := NewRK4(0, 0.01, d).Solve()
	if err != nil {
		t.Fatal(err)
	}
	if iterNum != 100 {
		t.Fatalf("iterNum=%d != 100", iterNum)
	}
	if !scalar.EqualWithinAbs(xi, 1, 1e-12) {
		t.Fatalf("xi=%f != 1", xi)
	}
	if !scalar.EqualWithinAbs(d.state[0], math.Exp(-1), 1e-9) {
		t.Fatalf("y(1)=%.12f != %.12f", d.state[0], math.Exp(-1))
	}
}

func TestRK4Oscillator(t *testing.T) {
	steps := uint64(1000)
	o := &oscillator{state: []float64{1, 0}, steps: steps}
	if _, _, err := NewRK4(0, 2*math.Pi/float64(steps), o).Solve(); err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(o.state[0], 1, 1e-9) || !scalar.EqualWithinAbs(o.state[1], 0, 1e-9) {
		t.Fatalf("oscillator did not come back after one period: %+v", o.state)
	}
}

func TestRK4TimeDependent(t *testing.T) {
	r := &ramp{state: []float64{0}, steps: 10}
	if _, _, err := NewRK4(0, 0.1, r).Solve(); err != nil {
		t.Fatal(err)
	}
	// RK4 is exact for polynomials of degree up to four.
	if !scalar.EqualWithinAbs(r.state[0], 0.5, 1e-12) {
		t.Fatalf("y(1)=%.15f != 0.5", r.state[0])
	}
}

func TestRK4Errors(t *testing.T) {
	assertPanic(t, func() { NewRK4(0, 0, &decay{}) })
	assertPanic(t, func() { NewRK4(0, -1, &decay{}) })
	assertPanic(t, func() { NewRK4(0, 1, nil) })

	b := &broken{decay{state: []float64{1}, steps: 10}}
	iterNum, _, err := NewRK4(0, 1, b).Solve()
	if err == nil {
		t.Fatal("mismatched derivative size should fail")
	}
	if iterNum != 0 {
		t.Fatalf("iterNum=%d != 0", iterNum)
	}
}
