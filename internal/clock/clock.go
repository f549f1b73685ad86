package clock

import "time"

// Ticker delivers instants on a fixed period until stopped.
type Ticker interface {
	// C returns the channel on which ticks are delivered.
	C() <-chan time.Time
	// Stop turns off the ticker. No more ticks are sent after Stop returns.
	Stop()
}

// Source produces the current instant and periodic tickers.
type Source interface {
	// Now returns the current instant.
	Now() time.Time
	// NewTicker returns a ticker firing every period.
	NewTicker(period time.Duration) Ticker
}

// System is the host clock. Instants are returned in UTC.
type System struct{}

// NewSystem returns the host clock source.
func NewSystem() *System {
	return new(System)
}

// Now returns the current UTC instant.
func (*System) Now() time.Time {
	return time.Now().UTC()
}

// NewTicker wraps time.NewTicker.
//
//nolint:ireturn // Callers only need the Ticker contract.
func (*System) NewTicker(period time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(period)}
}

// systemTicker adapts *time.Ticker to the Ticker interface.
type systemTicker struct {
	// ticker is the underlying runtime ticker.
	ticker *time.Ticker
}

// C returns the runtime ticker channel.
func (t *systemTicker) C() <-chan time.Time {
	return t.ticker.C
}

// Stop stops the runtime ticker.
func (t *systemTicker) Stop() {
	t.ticker.Stop()
}
