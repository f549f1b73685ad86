package timezone

import (
	"fmt"
	"time"
)

const (
	// layoutClock renders the main digital clock.
	layoutClock = "15:04:05"
	// layoutHourMinute renders alarm and conversion times.
	layoutHourMinute = "15:04"
	// layoutLongDate renders the date line under the main clock.
	layoutLongDate = "Monday, January 02, 2006"
)

// WallClock is the human-readable reading of an instant in one zone.
type WallClock struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday time.Weekday

	// at keeps the zoned instant for formatting.
	at time.Time
}

// FromTime extracts wall-clock fields from t in its own location.
func FromTime(t time.Time) WallClock {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	return WallClock{
		Year:    year,
		Month:   month,
		Day:     day,
		Hour:    hour,
		Minute:  minute,
		Second:  second,
		Weekday: t.Weekday(),
		at:      t,
	}
}

// Time returns the zoned instant the fields were read from.
func (w WallClock) Time() time.Time {
	return w.at
}

// Clock renders HH:mm:ss.
func (w WallClock) Clock() string {
	return w.at.Format(layoutClock)
}

// HourMinute renders HH:mm.
func (w WallClock) HourMinute() string {
	return w.at.Format(layoutHourMinute)
}

// LongDate renders e.g. "Friday, March 01, 2024".
func (w WallClock) LongDate() string {
	return w.at.Format(layoutLongDate)
}

// FormatHourMinute renders an hour and minute as HH:mm.
func FormatHourMinute(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
