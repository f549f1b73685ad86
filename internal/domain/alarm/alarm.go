package alarm

import (
	"time"

	"github.com/oshokin/timekeeper/internal/timezone"
)

const (
	// MaxHour is the largest valid alarm hour.
	MaxHour = 23
	// MaxMinute is the largest valid alarm minute.
	MaxMinute = 59
)

// Alarm is a one-shot alarm or reminder.
type Alarm struct {
	// ID is unique and stable for the alarm's lifetime.
	ID string
	// Label is free-form text shown in the fire message.
	Label string
	// Hour is the target hour in Zone, 0..23.
	Hour int
	// Minute is the target minute in Zone, 0..59.
	Minute int
	// Zone is the IANA identifier the target time is read in.
	Zone string
	// IsReminder only changes how the alarm is presented.
	IsReminder bool
	// Triggered flips to true once, when the alarm fires.
	Triggered bool
}

// Clone returns a copy of the alarm.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// Kind returns "Reminder" or "Alarm".
func (a *Alarm) Kind() string {
	return kind(a.IsReminder)
}

// Time renders the target time as HH:mm.
func (a *Alarm) Time() string {
	return timezone.FormatHourMinute(a.Hour, a.Minute)
}

// IsDue reports whether wall, read in the alarm's zone, is the single
// firing second of the alarm. Triggered alarms are never due.
func (a *Alarm) IsDue(wall timezone.WallClock) bool {
	return !a.Triggered &&
		wall.Hour == a.Hour &&
		wall.Minute == a.Minute &&
		wall.Second == 0
}

// CloneAll copies every alarm in alarms.
func CloneAll(alarms []*Alarm) []*Alarm {
	result := make([]*Alarm, len(alarms))
	for i, a := range alarms {
		result[i] = a.Clone()
	}

	return result
}

// kind maps the reminder flag to its display word.
func kind(isReminder bool) string {
	if isReminder {
		return "Reminder"
	}

	return "Alarm"
}

// NextOccurrence returns the first firing instant of the alarm at or after
// now, with the target time read in loc.
func (a *Alarm) NextOccurrence(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	year, month, day := local.Date()

	candidate := time.Date(year, month, day, a.Hour, a.Minute, 0, 0, loc)
	if candidate.Before(local) {
		candidate = time.Date(year, month, day+1, a.Hour, a.Minute, 0, 0, loc)
	}

	return candidate
}
