package engine

import (
	"slices"
	"sync"
	"time"

	"github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// Snapshot is the state handed to the presentation layer.
type Snapshot struct {
	// Now is the instant of the last tick.
	Now time.Time
	// Alarms lists every alarm in insertion order.
	Alarms []*alarm.Alarm
	// LastMessage is the most recent un-dismissed message, or nil.
	LastMessage *string
	// WorldClocks reads every catalog zone at Now.
	WorldClocks []timezone.Reading
}

// Message returns the last message or an empty string.
func (s Snapshot) Message() string {
	if s.LastMessage == nil {
		return ""
	}

	return *s.LastMessage
}

// subscription is one registered callback.
type subscription struct {
	// fn receives snapshots.
	fn func(Snapshot)
}

// subscriberSet is an ordered, mutex guarded list of subscriptions.
type subscriberSet struct {
	// mu protects subs.
	mu sync.Mutex
	// subs holds live subscriptions in registration order.
	subs []*subscription
}

// add registers fn and returns its unsubscribe function.
func (s *subscriberSet) add(fn func(Snapshot)) func() {
	sub := &subscription{fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			s.subs = slices.DeleteFunc(s.subs, func(other *subscription) bool {
				return other == sub
			})
		})
	}
}

// publish calls every subscriber outside the lock, so a callback may
// subscribe, unsubscribe or call back into the engine.
func (s *subscriberSet) publish(snapshot Snapshot) {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.fn != nil {
			sub.fn(snapshot)
		}
	}
}
