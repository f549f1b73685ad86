package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/timekeeper/internal/version"
)

const namespace = "timekeeper"

// Alarm states used as gauge labels.
const (
	StatePending   = "pending"
	StateTriggered = "triggered"
)

// Conversion outcomes used as counter labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics groups the engine instruments. A nil *Metrics is a valid no-op.
type Metrics struct {
	// ticks counts evaluated ticks.
	ticks prometheus.Counter
	// fired counts fire events by kind (alarm or reminder).
	fired *prometheus.CounterVec
	// rejected counts alarm drafts rejected by validation.
	rejected prometheus.Counter
	// conversions counts conversion requests by outcome.
	conversions *prometheus.CounterVec
	// alarms reports the registry size by state.
	alarms *prometheus.GaugeVec
	// lastTick reports the unix time of the last evaluated tick.
	lastTick prometheus.Gauge
	// buildInfo is a constant 1 labelled with build metadata.
	buildInfo *prometheus.GaugeVec
}

// New creates unregistered instruments.
func New() *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of clock ticks evaluated",
		}),
		fired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_fired_total",
			Help:      "Total number of alarms and reminders fired",
		}, []string{"kind"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarm_validation_failures_total",
			Help:      "Total number of rejected alarm drafts",
		}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Total number of timezone conversions by result",
		}, []string{"result"}),
		alarms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alarms",
			Help:      "Number of registered alarms by state",
		}, []string{"state"}),
		lastTick: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_tick_timestamp_seconds",
			Help:      "Unix time of the last evaluated tick",
		}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build version information",
		}, []string{"version", "commit", "build_time", "go_version"}),
	}

	m.buildInfo.With(version.Labels()).Set(1)

	return m
}

// Register adds every instrument to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.ticks,
		m.fired,
		m.rejected,
		m.conversions,
		m.alarms,
		m.lastTick,
		m.buildInfo,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}

	return nil
}

// ObserveTick records an evaluated tick at unix seconds.
func (m *Metrics) ObserveTick(unixSeconds float64) {
	if m == nil {
		return
	}

	m.ticks.Inc()
	m.lastTick.Set(unixSeconds)
}

// ObserveFire records one fire event of kind.
func (m *Metrics) ObserveFire(kind string) {
	if m == nil {
		return
	}

	m.fired.WithLabelValues(kind).Inc()
}

// ObserveRejectedDraft records a validation failure.
func (m *Metrics) ObserveRejectedDraft() {
	if m == nil {
		return
	}

	m.rejected.Inc()
}

// ObserveConversion records a conversion outcome.
func (m *Metrics) ObserveConversion(err error) {
	if m == nil {
		return
	}

	result := ResultOK
	if err != nil {
		result = ResultError
	}

	m.conversions.WithLabelValues(result).Inc()
}

// SetAlarms reports the registry size by state.
func (m *Metrics) SetAlarms(pending, triggered int) {
	if m == nil {
		return
	}

	m.alarms.WithLabelValues(StatePending).Set(float64(pending))
	m.alarms.WithLabelValues(StateTriggered).Set(float64(triggered))
}
