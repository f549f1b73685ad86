// Package converter maps a wall-clock time from one zone to another.
//
// The ambient clock only pins the calendar date: the time of day comes from
// the caller and is interpreted as occurring today in the source zone.
package converter
