package clock

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSystem_NowIsUTC verifies the host clock reports UTC instants.
func TestSystem_NowIsUTC(t *testing.T) {
	t.Parallel()

	require.Equal(t, time.UTC, NewSystem().Now().Location())
}

// TestSystem_Ticker checks the runtime ticker fires on its period inside a bubble.
func TestSystem_Ticker(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		start := time.Now()

		ticker := NewSystem().NewTicker(time.Second)
		defer ticker.Stop()

		at := <-ticker.C()
		require.Equal(t, time.Second, at.Sub(start))
	})
}

// TestManual_AdvanceFiresTickers ensures ticks are emitted per boundary crossed.
func TestManual_AdvanceFiresTickers(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 14, 29, 58, 0, time.UTC)
	m := NewManual(start)
	ticker := m.NewTicker(time.Second)

	m.Advance(time.Second)
	require.Equal(t, start.Add(time.Second), <-ticker.C())
	require.Equal(t, start.Add(time.Second), m.Now())

	// Nobody reads the second tick, so the third one is dropped.
	m.Advance(2 * time.Second)
	require.Equal(t, start.Add(2*time.Second), <-ticker.C())

	select {
	case <-ticker.C():
		t.Fatal("unexpected buffered tick")
	default:
	}
}

// TestManual_StopAndSet verifies stopped tickers stay silent and Set does not tick.
func TestManual_StopAndSet(t *testing.T) {
	t.Parallel()

	m := NewManual(time.Unix(0, 0).UTC())
	ticker := m.NewTicker(time.Second)

	m.Set(time.Unix(100, 0).UTC())
	require.Empty(t, ticker.C())

	ticker.Stop()
	m.Advance(5 * time.Second)
	require.Empty(t, ticker.C())
	require.Equal(t, time.Unix(105, 0).UTC(), m.Now())
}
