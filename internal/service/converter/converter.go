package converter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/timekeeper/internal/clock"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// InvalidTimeError is returned for malformed or out-of-range conversion input.
type InvalidTimeError struct {
	// Input is the offending value as given.
	Input string
	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Input, e.Reason)
}

// Message returns the user-facing text.
func (*InvalidTimeError) Message() string {
	return "Invalid time."
}

// IsInvalidTime reports whether err carries an InvalidTimeError.
func IsInvalidTime(err error) bool {
	var timeErr *InvalidTimeError

	return errors.As(err, &timeErr)
}

// Result is the converted wall-clock time.
type Result struct {
	// FromZone is the source zone.
	FromZone string
	// ToZone is the target zone.
	ToZone string
	// Hour is the converted hour in ToZone.
	Hour int
	// Minute is the converted minute in ToZone.
	Minute int
	// DayOffset is the calendar day difference from the source date, e.g. +1
	// when the converted time falls on the next day.
	DayOffset int
}

// Time renders the converted time as HH:mm.
func (r *Result) Time() string {
	return timezone.FormatHourMinute(r.Hour, r.Minute)
}

// Text renders "Time in <zone>: HH:mm".
func (r *Result) Text() string {
	return fmt.Sprintf("Time in %s: %s", r.ToZone, r.Time())
}

// Converter converts times between zones.
type Converter struct {
	// clock pins the calendar date.
	clock clock.Source
	// resolver loads zones.
	resolver timezone.Resolver
}

// New returns a converter reading today's date from src.
func New(src clock.Source, resolver timezone.Resolver) *Converter {
	return &Converter{
		clock:    src,
		resolver: resolver,
	}
}

// Convert interprets hour:minute as today in fromZone and returns the same
// instant read in toZone.
func (c *Converter) Convert(fromZone, toZone string, hour, minute int) (*Result, error) {
	if err := validate(hour, minute); err != nil {
		return nil, err
	}

	from, err := c.resolver.Location(fromZone)
	if err != nil {
		return nil, fmt.Errorf("source zone: %w", err)
	}

	to, err := c.resolver.Location(toZone)
	if err != nil {
		return nil, fmt.Errorf("target zone: %w", err)
	}

	year, month, day := c.clock.Now().In(from).Date()
	source := time.Date(year, month, day, hour, minute, 0, 0, from)
	target := source.In(to)

	return &Result{
		FromZone:  fromZone,
		ToZone:    toZone,
		Hour:      target.Hour(),
		Minute:    target.Minute(),
		DayOffset: dayOffset(source, target),
	}, nil
}

// ConvertText parses an "HH:mm" value and converts it.
func (c *Converter) ConvertText(fromZone, toZone, value string) (*Result, error) {
	hour, minute, err := ParseClock(value)
	if err != nil {
		return nil, err
	}

	return c.Convert(fromZone, toZone, hour, minute)
}

// ParseClock parses "HH:mm" into hour and minute.
func ParseClock(value string) (int, int, error) {
	hourText, minuteText, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, 0, &InvalidTimeError{Input: value, Reason: "expected HH:mm"}
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, 0, &InvalidTimeError{Input: value, Reason: "hour is not a number"}
	}

	minute, err := strconv.Atoi(minuteText)
	if err != nil {
		return 0, 0, &InvalidTimeError{Input: value, Reason: "minute is not a number"}
	}

	if err = validate(hour, minute); err != nil {
		return 0, 0, err
	}

	return hour, minute, nil
}

// validate checks hour and minute ranges.
func validate(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return &InvalidTimeError{Input: timezone.FormatHourMinute(hour, minute), Reason: "hour is outside 0..23"}
	}

	if minute < 0 || minute > 59 {
		return &InvalidTimeError{Input: timezone.FormatHourMinute(hour, minute), Reason: "minute is outside 0..59"}
	}

	return nil
}

// dayOffset returns the difference between the calendar dates of a and b,
// each read in its own location.
func dayOffset(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	dateA := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	dateB := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(dateB.Sub(dateA).Hours() / 24)
}
