package clock

import (
	"sync"
	"time"
)

// Manual is a Source whose time only moves when told to.
// Tickers created from it fire from Advance and Set, one tick per period
// boundary crossed.
type Manual struct {
	// mu protects now and tickers.
	mu sync.Mutex
	// now is the current simulated instant.
	now time.Time
	// tickers holds the live tickers created by NewTicker.
	tickers map[*manualTicker]struct{}
}

// NewManual returns a manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		tickers: make(map[*manualTicker]struct{}),
	}
}

// Now returns the simulated instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// NewTicker returns a ticker driven by Advance.
//
//nolint:ireturn // Callers only need the Ticker contract.
func (m *Manual) NewTicker(period time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTicker{
		clock:  m,
		period: period,
		next:   m.now.Add(period),
		c:      make(chan time.Time, 1),
	}
	m.tickers[t] = struct{}{}

	return t
}

// Set moves the clock to at without firing tickers.
func (m *Manual) Set(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = at
	for t := range m.tickers {
		t.next = at.Add(t.period)
	}
}

// Advance moves the clock forward by d and fires every ticker whose next
// deadline was reached. Like time.Ticker, a slow reader drops ticks.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
	for t := range m.tickers {
		for !t.next.After(m.now) {
			select {
			case t.c <- t.next:
			default:
			}

			t.next = t.next.Add(t.period)
		}
	}
}

// manualTicker is a Ticker fed by Manual.Advance.
type manualTicker struct {
	// clock is the owning manual clock.
	clock *Manual
	// period is the tick period.
	period time.Duration
	// next is the instant of the next tick.
	next time.Time
	// c receives ticks.
	c chan time.Time
}

// C returns the tick channel.
func (t *manualTicker) C() <-chan time.Time {
	return t.c
}

// Stop detaches the ticker from its clock.
func (t *manualTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	delete(t.clock.tickers, t)
}
