package hohmann

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// vectorsEqual returns whether both vectors are within 1e-9 of each other,
// relative to the largest norm.
func vectorsEqual(a, b Vec2) bool {
	scale := math.Max(math.Max(a.Norm(), b.Norm()), 1)
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2) <= 1e-9*scale
}

//anglesEqual returns whether two angles in Radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 2*math.Pi)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	if diff < angleε {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", Rad2deg(diff))
}

// testConfig returns a configuration with short phases.
func testConfig() Config {
	conf := DefaultConfig()
	conf.Target = 0
	conf.Durations = Durations{PreBurn: 10, Burn: 4, Coast: 20, PostBurn: 10}
	conf.IdlePeriod = 40
	return conf
}

func newTestEngine(t *testing.T, conf Config, opts ...Option) *Engine {
	e, err := NewEngine(conf, opts...)
	if err != nil {
		t.Fatalf("could not create engine: %s", err)
	}
	return e
}

// tickN ticks the engine n times and returns the samples.
func tickN(t *testing.T, e *Engine, n int) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		s, err := e.Tick()
		if err != nil {
			t.Fatalf("tick %d: %s", i, err)
		}
		samples[i] = s
	}
	return samples
}
