// Package calendar exports pending alarms as an iCalendar feed.
//
// Every pending alarm becomes one VEVENT at its next occurrence in the
// alarm's own zone, with a DISPLAY VALARM that triggers at the event start.
package calendar
