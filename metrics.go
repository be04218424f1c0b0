package hohmann

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by an Engine. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	ticks     prometheus.Counter
	transfers *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	phase     prometheus.Gauge
	radius    prometheus.Gauge
	deltaV    *prometheus.GaugeVec
}

// NewMetrics creates the engine collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hohmann_ticks_total",
			Help: "Total number of discrete steps advanced.",
		}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hohmann_transfers_total",
			Help: "Total number of transfers started, by direction.",
		}, []string{"direction"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hohmann_commands_rejected_total",
			Help: "Total number of ignored or rejected commands, by reason.",
		}, []string{"reason"}),
		phase: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hohmann_phase",
			Help: "Current phase of the transfer state machine (0 is idle).",
		}),
		radius: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hohmann_orbit_radius_meters",
			Help: "Radius of the current circular orbit.",
		}),
		deltaV: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hohmann_last_delta_v_meters_per_second",
			Help: "Signed Δv of the most recently planned burns.",
		}, []string{"burn"}),
	}
	reg.MustRegister(m.ticks, m.transfers, m.rejected, m.phase, m.radius, m.deltaV)
	return m
}

func (m *Metrics) tick(p Phase, radius float64) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.state(p, radius)
}

func (m *Metrics) state(p Phase, radius float64) {
	if m == nil {
		return
	}
	m.phase.Set(float64(p))
	m.radius.Set(radius)
}

func (m *Metrics) transferStarted(p TransferPlan) {
	if m == nil {
		return
	}
	direction := "outbound"
	if !p.Outbound() {
		direction = "inbound"
	}
	m.transfers.WithLabelValues(direction).Inc()
	m.deltaV.WithLabelValues("1").Set(p.ΔV1)
	m.deltaV.WithLabelValues("2").Set(p.ΔV2)
	m.phase.Set(float64(PreBurnCoast))
}

func (m *Metrics) commandRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}
