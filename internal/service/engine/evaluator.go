package engine

import (
	"context"
	"time"

	"github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/logger"
)

// evaluate fires every pending alarm that is due at now. Callers hold mu.
//
// The window is the single :00 second of the target minute read in the
// alarm's zone. An alarm that fails to resolve is skipped for this tick
// without affecting the others.
func (e *Engine) evaluate(ctx context.Context, now time.Time) []alarm.FireEvent {
	var events []alarm.FireEvent

	for _, a := range e.registry.Pending() {
		wall, err := e.resolver.Resolve(a.Zone, now)
		if err != nil {
			skipCtx := logger.WithFields(ctx, "alarm_id", a.ID, "zone", a.Zone)
			logger.WarnKV(skipCtx, "Alarm skipped", "error", err)
			continue
		}

		if !a.IsDue(wall) {
			continue
		}

		// Only the false to true transition emits an event.
		if !e.registry.MarkTriggered(a.ID) {
			continue
		}

		events = append(events, alarm.NewFireEvent(a, now))
	}

	return events
}
