package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/timekeeper/internal/clock"
	"github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/logger"
	"github.com/oshokin/timekeeper/internal/metrics"
	repository "github.com/oshokin/timekeeper/internal/repository/alarm"
	"github.com/oshokin/timekeeper/internal/service/converter"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// DefaultTickInterval is used when Options.TickInterval is zero.
const DefaultTickInterval = time.Second

var (
	// ErrNoClock is returned when the engine is built without a clock source.
	ErrNoClock = errors.New("clock source is required")
	// ErrInvalidInterval is returned for a negative tick interval.
	ErrInvalidInterval = errors.New("tick interval must be positive")
	// ErrAlreadyRunning is returned by Start on a running engine.
	ErrAlreadyRunning = errors.New("engine is already running")
)

// FireHandler receives every fire event after the alarm was marked.
type FireHandler func(ctx context.Context, event alarm.FireEvent)

// Options wires the engine collaborators. Only Clock is required.
type Options struct {
	// Clock produces "now" and the periodic ticker.
	Clock clock.Source
	// Resolver maps zones to wall-clock fields. Defaults to the IANA resolver.
	Resolver timezone.Resolver
	// Registry stores alarms. Defaults to an in-memory registry.
	Registry repository.Registry
	// Catalog lists the world clock zones. Defaults to timezone.DefaultCatalog.
	Catalog timezone.Catalog
	// TickInterval is the ticker period. Defaults to DefaultTickInterval.
	TickInterval time.Duration
	// OnFire is called for every fire event, outside the engine lock.
	OnFire FireHandler
	// Metrics records engine activity. Nil disables metrics.
	Metrics *metrics.Metrics
}

// Engine composes the clock, registry, due evaluator and converter.
type Engine struct {
	// clock is the authoritative time source.
	clock clock.Source
	// resolver maps zones to wall-clock fields.
	resolver timezone.Resolver
	// registry owns the alarms.
	registry repository.Registry
	// catalog lists the world clock zones.
	catalog timezone.Catalog
	// converter serves conversion requests.
	converter *converter.Converter
	// interval is the ticker period.
	interval time.Duration
	// onFire is the optional fire hook.
	onFire FireHandler
	// metrics is the optional instrument set.
	metrics *metrics.Metrics

	// mu serializes ticks and mutations and guards now and lastMessage.
	mu sync.Mutex
	// now is the instant of the last tick.
	now time.Time
	// lastMessage is the most recent un-dismissed message.
	lastMessage *string

	// subscribers receive snapshots.
	subscribers subscriberSet

	// runMu guards cancel and done.
	runMu sync.Mutex
	// cancel stops the running loop; nil when stopped.
	cancel context.CancelFunc
	// done is closed when the loop exits.
	done chan struct{}
}

// New builds an engine. A missing clock is a startup failure.
func New(opts *Options) (*Engine, error) {
	if opts == nil || opts.Clock == nil {
		return nil, ErrNoClock
	}

	if opts.TickInterval < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, opts.TickInterval)
	}

	e := &Engine{
		clock:    opts.Clock,
		resolver: opts.Resolver,
		registry: opts.Registry,
		catalog:  opts.Catalog,
		interval: opts.TickInterval,
		onFire:   opts.OnFire,
		metrics:  opts.Metrics,
	}

	if e.resolver == nil {
		e.resolver = timezone.NewResolver()
	}

	if e.registry == nil {
		e.registry = repository.NewMemoryRegistry(e.resolver)
	}

	if len(e.catalog) == 0 {
		e.catalog = timezone.DefaultCatalog()
	}

	if err := e.catalog.Validate(e.resolver); err != nil {
		return nil, fmt.Errorf("validate zone catalog: %w", err)
	}

	if e.interval == 0 {
		e.interval = DefaultTickInterval
	}

	e.converter = converter.New(e.clock, e.resolver)
	e.now = e.clock.Now()

	return e, nil
}

// Start acquires the ticker and evaluates alarms on every tick until ctx is
// canceled or Stop is called.
func (e *Engine) Start(ctx context.Context) error {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.runningLocked() {
		return ErrAlreadyRunning
	}

	ctx = logger.WithName(ctx, "engine")
	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})

	ticker := e.clock.NewTicker(e.interval)

	logger.InfoKV(ctx, "Engine started", "interval", e.interval.String(), "alarms", e.registry.Len())

	go e.run(ctx, ticker, e.done)

	return nil
}

// Stop cancels the loop and waits for it to exit. After Stop returns no
// further tick, fire or notification happens. Stop is idempotent and must
// not be called from a subscriber or fire handler.
func (e *Engine) Stop() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cancel == nil {
		return
	}

	e.cancel()
	<-e.done

	e.cancel = nil
	e.done = nil
}

// Running reports whether the tick loop is active.
func (e *Engine) Running() bool {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	return e.runningLocked()
}

// runningLocked reports whether the loop is still active. A loop that exited
// because the parent context was canceled counts as stopped, and its run
// state is released. Callers hold runMu.
func (e *Engine) runningLocked() bool {
	if e.cancel == nil {
		return false
	}

	select {
	case <-e.done:
		e.cancel()
		e.cancel = nil
		e.done = nil

		return false
	default:
		return true
	}
}

// Catalog returns the selectable zones.
func (e *Engine) Catalog() timezone.Catalog {
	return append(timezone.Catalog(nil), e.catalog...)
}

// run is the tick loop.
func (e *Engine) run(ctx context.Context, ticker clock.Ticker, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Engine stopped")
			return
		case <-ticker.C():
			// Stop may race with a pending tick; cancellation wins.
			if ctx.Err() != nil {
				logger.Info(ctx, "Engine stopped")
				return
			}

			e.Tick(ctx)
		}
	}
}

// Tick reads the clock once, fires due alarms and notifies subscribers.
// The loop calls it on every ticker period; it is exported for hosts that
// drive their own timer.
func (e *Engine) Tick(ctx context.Context) []alarm.FireEvent {
	e.mu.Lock()

	now := e.clock.Now()
	e.now = now

	events := e.evaluate(ctx, now)
	if len(events) > 0 {
		message := events[len(events)-1].Message()
		e.lastMessage = &message
	}

	snapshot := e.snapshotLocked()

	e.mu.Unlock()

	e.metrics.ObserveTick(float64(now.Unix()))
	e.observeAlarms(snapshot.Alarms)

	for _, event := range events {
		e.metrics.ObserveFire(event.Kind())

		logger.InfoKV(ctx, "Alarm fired",
			"alarm_id", event.AlarmID,
			"zone", event.Zone,
			"message", event.Message())

		if e.onFire != nil {
			e.onFire(ctx, event)
		}
	}

	e.subscribers.publish(snapshot)

	return events
}

// AddAlarm validates and registers a draft. A successful add clears the last
// message; a rejected draft replaces it with the user-facing validation text
// and leaves the registry untouched.
func (e *Engine) AddAlarm(ctx context.Context, draft *alarm.Draft) (*alarm.Alarm, error) {
	e.mu.Lock()

	created, err := e.registry.Add(draft)
	if err != nil {
		message := alarm.InvalidTimeMessage

		var validationErr *alarm.ValidationError
		if errors.As(err, &validationErr) {
			message = validationErr.Message()
		}

		e.lastMessage = &message
		snapshot := e.snapshotLocked()

		e.mu.Unlock()

		e.metrics.ObserveRejectedDraft()
		logger.WarnKV(ctx, "Alarm rejected", "error", err)
		e.subscribers.publish(snapshot)

		return nil, fmt.Errorf("add alarm: %w", err)
	}

	e.lastMessage = nil
	snapshot := e.snapshotLocked()

	e.mu.Unlock()

	e.observeAlarms(snapshot.Alarms)
	logger.InfoKV(ctx, "Alarm added",
		"alarm_id", created.ID,
		"kind", created.Kind(),
		"time", created.Time(),
		"zone", created.Zone)
	e.subscribers.publish(snapshot)

	return created, nil
}

// RemoveAlarm deletes the alarm with id, before or after it fired.
// Unknown ids are ignored.
func (e *Engine) RemoveAlarm(ctx context.Context, id string) {
	e.mu.Lock()

	existing, err := e.registry.Get(id)
	removed := err == nil && e.registry.Remove(id)
	snapshot := e.snapshotLocked()

	e.mu.Unlock()

	if removed {
		e.observeAlarms(snapshot.Alarms)
		logger.InfoKV(ctx, "Alarm removed",
			"alarm_id", id,
			"kind", existing.Kind(),
			"triggered", existing.Triggered)
	}

	e.subscribers.publish(snapshot)
}

// DismissMessage clears the last message.
func (e *Engine) DismissMessage(ctx context.Context) {
	e.mu.Lock()

	e.lastMessage = nil
	snapshot := e.snapshotLocked()

	e.mu.Unlock()

	logger.DebugKV(ctx, "Message dismissed")
	e.subscribers.publish(snapshot)
}

// Convert interprets hour:minute as today in fromZone and reads it in toZone.
func (e *Engine) Convert(ctx context.Context, fromZone, toZone string, hour, minute int) (*converter.Result, error) {
	result, err := e.converter.Convert(fromZone, toZone, hour, minute)

	return e.observeConversion(ctx, fromZone, toZone, result, err)
}

// ConvertText parses an "HH:mm" value and converts it like Convert.
func (e *Engine) ConvertText(ctx context.Context, fromZone, toZone, value string) (*converter.Result, error) {
	result, err := e.converter.ConvertText(fromZone, toZone, value)

	return e.observeConversion(ctx, fromZone, toZone, result, err)
}

// observeConversion records the outcome of a conversion.
func (e *Engine) observeConversion(
	ctx context.Context,
	fromZone, toZone string,
	result *converter.Result,
	err error,
) (*converter.Result, error) {
	e.metrics.ObserveConversion(err)

	if err != nil {
		logger.DebugKV(ctx, "Conversion rejected", "from", fromZone, "to", toZone, "error", err)

		return nil, err
	}

	return result, nil
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every tick and every
// mutating operation. The returned function unsubscribes and is idempotent.
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return e.subscribers.add(fn)
}

// snapshotLocked builds a snapshot. Callers hold mu.
func (e *Engine) snapshotLocked() Snapshot {
	var message *string

	if e.lastMessage != nil {
		copied := *e.lastMessage
		message = &copied
	}

	return Snapshot{
		Now:         e.now,
		Alarms:      e.registry.List(),
		LastMessage: message,
		WorldClocks: e.catalog.Read(e.resolver, e.now),
	}
}

// observeAlarms reports the registry size by state.
func (e *Engine) observeAlarms(alarms []*alarm.Alarm) {
	var triggered int

	for _, a := range alarms {
		if a.Triggered {
			triggered++
		}
	}

	e.metrics.SetAlarms(len(alarms)-triggered, triggered)
}
