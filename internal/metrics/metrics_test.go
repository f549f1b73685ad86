package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// TestMetrics_Observe verifies every instrument moves as expected.
func TestMetrics_Observe(t *testing.T) {
	t.Parallel()

	m := New()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.ObserveTick(1700000000)
	m.ObserveTick(1700000001)
	m.ObserveFire("Alarm")
	m.ObserveFire("Reminder")
	m.ObserveFire("Alarm")
	m.ObserveRejectedDraft()
	m.ObserveConversion(nil)
	m.ObserveConversion(errors.New("bad"))
	m.SetAlarms(3, 2)

	require.InDelta(t, 2, testutil.ToFloat64(m.ticks), 0)
	require.InDelta(t, 1700000001, testutil.ToFloat64(m.lastTick), 0)
	require.InDelta(t, 2, testutil.ToFloat64(m.fired.WithLabelValues("Alarm")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.fired.WithLabelValues("Reminder")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.rejected), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.conversions.WithLabelValues(ResultOK)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.conversions.WithLabelValues(ResultError)), 0)
	require.InDelta(t, 3, testutil.ToFloat64(m.alarms.WithLabelValues(StatePending)), 0)
	require.InDelta(t, 2, testutil.ToFloat64(m.alarms.WithLabelValues(StateTriggered)), 0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}

	require.Contains(t, names, "timekeeper_build_info")
	require.Contains(t, names, "timekeeper_alarms_fired_total")
}

// TestMetrics_RegisterTwice ensures duplicate registration is reported.
func TestMetrics_RegisterTwice(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	require.NoError(t, New().Register(reg))
	require.Error(t, New().Register(reg))
}

// TestMetrics_NilIsNoop checks the nil receiver contract.
func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics

	require.NotPanics(t, func() {
		m.ObserveTick(0)
		m.ObserveFire("Alarm")
		m.ObserveRejectedDraft()
		m.ObserveConversion(nil)
		m.SetAlarms(1, 1)
	})
}
