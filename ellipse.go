package hohmann

import (
	"fmt"
	"time"
)

// EllipseSample is the state of a body on a fixed ellipse at one step.
type EllipseSample struct {
	Step      int       `json:"step"`
	Anomalies Anomalies `json:"anomalies"`
	Radius    float64   `json:"radius"`
	Position  Vec2      `json:"position"` // relative to the focus
	Centered  Vec2      `json:"centered"` // relative to the centre of the ellipse
	Velocity  Vec2      `json:"velocity"`
	Speed     float64   `json:"speed"`
}

// Ellipse propagates a body along a fixed Keplerian ellipse, with a fixed
// number of steps per revolution.
type Ellipse struct {
	conic Conic
	steps int
	mode  AnomalyMode
	k     int
}

// NewEllipse returns an ellipse propagator starting at periapsis.
func NewEllipse(c Conic, steps int, mode AnomalyMode) (*Ellipse, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps per revolution must be positive (got %d)", ErrConfiguration, steps)
	}
	if _, err := mode.At(0, c.e); err != nil {
		return nil, err
	}
	return &Ellipse{conic: c, steps: steps, mode: mode}, nil
}

// Conic returns the ellipse being propagated.
func (el *Ellipse) Conic() Conic {
	return el.conic
}

// StepDuration returns the time represented by one step. Steps only map to
// equal times in TimeAccurate mode.
func (el *Ellipse) StepDuration() time.Duration {
	return time.Duration(el.conic.PeriodSeconds() / float64(el.steps) * float64(time.Second))
}

// SampleAt returns the sample at step k, without changing the propagator.
func (el *Ellipse) SampleAt(k int) (EllipseSample, error) {
	an, err := el.mode.At(float64(k%el.steps)/float64(el.steps), el.conic.e)
	if err != nil {
		return EllipseSample{}, err
	}
	sv, err := el.conic.StateAt(an.True)
	if err != nil {
		return EllipseSample{}, err
	}
	return EllipseSample{
		Step:      k,
		Anomalies: an,
		Radius:    sv.R.Norm(),
		Position:  sv.R,
		Centered:  sv.R.Add(Vec2{el.conic.CenterOffset(), 0}),
		Velocity:  sv.V,
		Speed:     sv.Speed(),
	}, nil
}

// Tick returns the current sample and advances by one step, wrapping after a
// full revolution.
func (el *Ellipse) Tick() (EllipseSample, error) {
	s, err := el.SampleAt(el.k)
	if err != nil {
		return EllipseSample{}, err
	}
	el.k = (el.k + 1) % el.steps
	return s, nil
}
