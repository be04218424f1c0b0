package hohmann

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"
)

/* Sequences a Hohmann transfer over discrete steps. */

// Sample is the observable state of the engine for one discrete step.
type Sample struct {
	Step        uint64   `json:"step"`
	Phase       Phase    `json:"phase"`
	Position    Vec2     `json:"position"`
	Velocity    Vec2     `json:"velocity"`
	Speed       float64  `json:"speed"`
	ActiveΔv    *float64 `json:"active_delta_v,omitempty"` // only set while burning
	OrbitRadius float64  `json:"orbit_radius"`
	Anomaly     float64  `json:"anomaly"` // true anomaly on the transfer ellipse, longitude on a circle
}

// Burning returns whether a burn is being performed at this step.
func (s Sample) Burning() bool {
	return s.ActiveΔv != nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger of the engine.
func WithLogger(logger kitlog.Logger) Option {
	return func(e *Engine) {
		e.logger = kitlog.With(logger, "subsys", "engine")
	}
}

// WithMetrics makes the engine report to the provided metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine is the transfer state machine. It owns the circular orbit radius,
// the active phase and the transfer plan: nothing else may change them.
// The engine is not safe for concurrent use, hosts must serialize calls.
type Engine struct {
	conf     Config
	radius   float64       // current circular orbit
	target   float64       // latched target radius, zero when unset
	phase    Phase         // active phase
	k        int           // steps spent in the active phase
	step     uint64        // global step index
	λ        float64       // longitude on the circular orbit
	λd       float64       // departure longitude of the transfer in progress
	plan     *TransferPlan // nil unless transferring
	transfer Conic         // transfer ellipse of plan
	logger   kitlog.Logger
	metrics  *Metrics
}

// NewEngine returns an idle engine on the circular orbit of conf.Radius.
func NewEngine(conf Config, opts ...Option) (*Engine, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{conf: conf, radius: conf.Radius, target: conf.Target, logger: kitlog.NewNopLogger()}
	for _, opt := range opts {
		opt(e)
	}
	e.metrics.state(e.phase, e.radius)
	return e, nil
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config {
	return e.conf
}

// Phase returns the active phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Radius returns the radius of the current circular orbit.
func (e *Engine) Radius() float64 {
	return e.radius
}

// Target returns the latched target radius, zero when unset.
func (e *Engine) Target() float64 {
	return e.target
}

// Step returns the index of the next step to be observed.
func (e *Engine) Step() uint64 {
	return e.step
}

// TransferPlan returns the plan of the transfer in progress, if any.
func (e *Engine) TransferPlan() (TransferPlan, bool) {
	if e.plan == nil {
		return TransferPlan{}, false
	}
	return *e.plan, true
}

// SetTargetRadius latches the target radius used by the next StartTransfer.
func (e *Engine) SetTargetRadius(r float64) error {
	if !validRadius(r) {
		e.metrics.commandRejected("invalid_target")
		return fmt.Errorf("%w: target radius must be positive (got %g)", ErrConfiguration, r)
	}
	e.target = r
	return nil
}

// StartTransfer starts a transfer to the latched target radius. It is ignored,
// and returns ErrInvalidCommand, when not idle or when no target is set.
func (e *Engine) StartTransfer() error {
	if e.phase != Idle {
		e.metrics.commandRejected("busy")
		e.logger.Log("level", "warning", "step", e.step, "command", "start", "ignored", "transfer in progress", "phase", e.phase)
		return fmt.Errorf("%w: transfer requested while in %s", ErrInvalidCommand, e.phase)
	}
	if e.target == 0 {
		e.metrics.commandRejected("no_target")
		e.logger.Log("level", "warning", "step", e.step, "command", "start", "ignored", "no target radius")
		return fmt.Errorf("%w: no target radius set", ErrInvalidCommand)
	}
	plan, err := SolveHohmann(e.conf.Body, e.radius, e.target)
	if err != nil {
		return err
	}
	transfer, err := plan.Conic()
	if err != nil {
		return err
	}
	e.plan = &plan
	e.transfer = transfer
	e.enter(PreBurnCoast)
	e.metrics.transferStarted(plan)
	e.logger.Log("level", "info", "step", e.step, "status", "transfer", "r1", plan.R1, "r2", plan.R2, "a", plan.A, "e", plan.E, "Δv1(m/s)", plan.ΔV1, "Δv2(m/s)", plan.ΔV2, "tof", plan.TOF)
	return nil
}

// StartTransferTo latches r as the target and starts the transfer.
func (e *Engine) StartTransferTo(r float64) error {
	if e.phase != Idle {
		e.metrics.commandRejected("busy")
		return fmt.Errorf("%w: transfer requested while in %s", ErrInvalidCommand, e.phase)
	}
	if err := e.SetTargetRadius(r); err != nil {
		return err
	}
	return e.StartTransfer()
}

// Reset returns to Idle on the circular orbit of radius r, at longitude zero.
// The latched target is kept.
func (e *Engine) Reset(r float64) error {
	if !validRadius(r) {
		return fmt.Errorf("%w: orbit radius must be positive (got %g)", ErrConfiguration, r)
	}
	e.radius = r
	e.phase, e.k, e.step = Idle, 0, 0
	e.λ, e.λd = 0, 0
	e.plan = nil
	e.metrics.state(e.phase, e.radius)
	e.logger.Log("level", "info", "status", "reset", "r", r)
	return nil
}

// Tick returns the observable state of the current step, then advances by one step.
func (e *Engine) Tick() (Sample, error) {
	s, err := e.observe()
	if err != nil {
		e.logger.Log("level", "critical", "step", e.step, "phase", e.phase, "err", err)
		return Sample{}, err
	}
	e.advance()
	e.metrics.tick(e.phase, e.radius)
	return s, nil
}

// TransferArc returns n points along the transfer path, or nil when idle. Before
// the first burn, the departure point is where the vehicle will be when it starts.
func (e *Engine) TransferArc(n int) ([]Vec2, error) {
	if e.plan == nil {
		return nil, nil
	}
	λd := e.λd
	if e.phase == PreBurnCoast {
		λd = normalizeAngle(e.λ + float64(e.conf.Durations.PreBurn-e.k)*e.dλ())
	}
	return e.plan.Arc(n, λd)
}

// dλ is the longitude increment per step on a circular orbit.
func (e *Engine) dλ() float64 {
	return twoPi / float64(e.conf.IdlePeriod)
}

func (e *Engine) observe() (Sample, error) {
	s := Sample{Step: e.step, Phase: e.phase, OrbitRadius: e.radius}
	var sv StateVector
	switch e.phase {
	case Idle, PreBurnCoast, PostBurnCoast:
		c, err := NewCircular(e.radius, e.conf.Body)
		if err != nil {
			return Sample{}, err
		}
		if sv, err = c.StateAt(e.λ); err != nil {
			return Sample{}, err
		}
		s.Anomaly = e.λ
	case Burn1:
		sv = burnState(e.plan.R1, e.λd, e.plan.V1+e.burnProgress()*e.plan.ΔV1)
		Δv := e.plan.ΔV1
		s.ActiveΔv = &Δv
		s.Anomaly = e.plan.ArgPeriapsis()
	case TransferCoast:
		ν, err := e.transferAnomaly()
		if err != nil {
			return Sample{}, err
		}
		if sv, err = e.transfer.StateAt(ν); err != nil {
			return Sample{}, err
		}
		sv = sv.Rotate(e.λd + e.plan.ArgPeriapsis())
		s.Anomaly = ν
	case Burn2:
		sv = burnState(e.plan.R2, e.λd+math.Pi, e.plan.VArrival+e.burnProgress()*e.plan.ΔV2)
		Δv := e.plan.ΔV2
		s.ActiveΔv = &Δv
		s.Anomaly = normalizeAngle(e.plan.ArgPeriapsis() + math.Pi)
	default:
		return Sample{}, fmt.Errorf("%w: unknown phase %d", ErrNumeric, e.phase)
	}
	s.Position, s.Velocity = sv.R, sv.V
	s.Speed = sv.Speed()
	return s, nil
}

// burnProgress is the fraction of the burn completed at the end of this step.
func (e *Engine) burnProgress() float64 {
	return float64(e.k+1) / float64(e.conf.Durations.Burn)
}

// transferAnomaly returns the true anomaly on the transfer ellipse. The coast
// covers half a revolution, starting at periapsis when raising the orbit and
// at apoapsis when lowering it.
func (e *Engine) transferAnomaly() (float64, error) {
	fraction := float64(e.k) / float64(2*e.conf.Durations.Coast)
	if !e.plan.Outbound() {
		fraction += 0.5
	}
	return e.conf.Mode.TrueAnomaly(fraction, e.plan.E)
}

// burnState returns the state of a burn held at radius r and longitude λ with a
// prograde velocity of the given speed.
func burnState(r, λ, speed float64) StateVector {
	return StateVector{R: Vec2{r, 0}, V: Vec2{0, speed}}.Rotate(λ)
}

func (e *Engine) advance() {
	e.step++
	if e.phase.Circular() {
		e.λ = normalizeAngle(e.λ + e.dλ())
	}
	if e.phase == Idle {
		return
	}
	e.k++
	rule := phaseTable[e.phase]
	if e.k >= rule.duration(e.conf.Durations) {
		e.enter(rule.next)
	}
}

func (e *Engine) enter(p Phase) {
	from := e.phase
	e.phase, e.k = p, 0
	switch p {
	case Burn1:
		e.λd = e.λ
	case PostBurnCoast:
		// Commit the new circular orbit; the plan is no longer needed.
		e.radius = e.plan.R2
		e.λ = normalizeAngle(e.λd + math.Pi)
		e.logger.Log("level", "notice", "step", e.step, "status", "circularized", "r", e.radius)
		e.plan = nil
	}
	e.logger.Log("level", "debug", "step", e.step, "from", from, "to", p)
}
