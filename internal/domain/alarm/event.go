package alarm

import (
	"fmt"
	"time"

	"github.com/oshokin/timekeeper/internal/timezone"
)

// noLabel replaces an empty label in fire messages.
const noLabel = "No label"

// FireEvent is emitted once when an alarm fires.
type FireEvent struct {
	// AlarmID identifies the fired alarm.
	AlarmID string
	// IsReminder mirrors the alarm's reminder flag.
	IsReminder bool
	// Label is the alarm label, possibly empty.
	Label string
	// Hour is the alarm's target hour.
	Hour int
	// Minute is the alarm's target minute.
	Minute int
	// Zone is the zone the alarm was evaluated in.
	Zone string
	// At is the tick instant the alarm fired on.
	At time.Time
}

// NewFireEvent builds the event for a firing of a at instant at.
func NewFireEvent(a *Alarm, at time.Time) FireEvent {
	return FireEvent{
		AlarmID:    a.ID,
		IsReminder: a.IsReminder,
		Label:      a.Label,
		Hour:       a.Hour,
		Minute:     a.Minute,
		Zone:       a.Zone,
		At:         at,
	}
}

// Kind returns "Reminder" or "Alarm".
func (e FireEvent) Kind() string {
	return kind(e.IsReminder)
}

// Message renders "<Alarm|Reminder>: <label or 'No label'> for <HH:mm>".
func (e FireEvent) Message() string {
	label := e.Label
	if label == "" {
		label = noLabel
	}

	return fmt.Sprintf("%s: %s for %s", e.Kind(), label, timezone.FormatHourMinute(e.Hour, e.Minute))
}
