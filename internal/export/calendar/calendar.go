package calendar

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/timezone"
)

const (
	// ProductID identifies the feed producer.
	ProductID = "-//oshokin//timekeeper//EN"
	// Version is the iCalendar version written to the feed.
	Version = "2.0"
	// UIDDomain is appended to alarm IDs to build event UIDs.
	UIDDomain = "timekeeper"

	componentAlarm = "VALARM"

	propVersion     = "VERSION"
	propProductID   = "PRODID"
	propCalScale    = "CALSCALE"
	propUID         = "UID"
	propDTStamp     = "DTSTAMP"
	propDTStart     = "DTSTART"
	propSummary     = "SUMMARY"
	propCategories  = "CATEGORIES"
	propAction      = "ACTION"
	propTrigger     = "TRIGGER"
	propDescription = "DESCRIPTION"

	calScale       = "GREGORIAN"
	actionDisplay  = "DISPLAY"
	triggerAtStart = "PT0S"
)

// ErrNothingToExport is returned when no pending alarm remains.
var ErrNothingToExport = errors.New("no pending alarms to export")

// Exporter builds calendars from alarms.
type Exporter struct {
	// resolver maps alarm zones to locations.
	resolver timezone.Resolver
}

// NewExporter creates an exporter that resolves zones with resolver.
func NewExporter(resolver timezone.Resolver) *Exporter {
	return &Exporter{resolver: resolver}
}

// Calendar builds a calendar of the pending alarms in alarms, stamped at now.
// Triggered alarms never fire again and are left out.
func (e *Exporter) Calendar(alarms []*alarm.Alarm, now time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(propVersion, Version)
	cal.Props.SetText(propProductID, ProductID)
	cal.Props.SetText(propCalScale, calScale)

	stamp := ical.NewProp(propDTStamp)
	stamp.SetDateTime(now.UTC())

	for _, a := range alarms {
		if a == nil || a.Triggered {
			continue
		}

		loc, err := e.resolver.Location(a.Zone)
		if err != nil {
			return nil, fmt.Errorf("alarm %s: %w", a.ID, err)
		}

		event := newEvent(a, a.NextOccurrence(now, loc))
		event.Props.Set(stamp)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return nil, ErrNothingToExport
	}

	return cal, nil
}

// Encode writes the calendar of alarms to w.
func (e *Exporter) Encode(w io.Writer, alarms []*alarm.Alarm, now time.Time) error {
	cal, err := e.Calendar(alarms, now)
	if err != nil {
		return err
	}

	if err = ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}

	return nil
}

func newEvent(a *alarm.Alarm, start time.Time) *ical.Event {
	message := alarm.NewFireEvent(a, start).Message()

	event := ical.NewEvent()
	event.Props.SetText(propUID, a.ID+"@"+UIDDomain)
	event.Props.SetText(propSummary, message)
	event.Props.SetText(propCategories, a.Kind())

	dtStart := ical.NewProp(propDTStart)
	dtStart.SetDateTime(start)
	event.Props.Set(dtStart)

	display := ical.NewComponent(componentAlarm)
	display.Props.SetText(propAction, actionDisplay)
	display.Props.SetText(propDescription, message)

	// Set manually to avoid a VALUE=TEXT parameter.
	trigger := ical.NewProp(propTrigger)
	trigger.Value = triggerAtStart
	display.Props.Set(trigger)

	event.Children = append(event.Children, display)

	return event
}
