// Package alarm contains core domain types for the alarm business logic.
//
// It defines Alarm (a one-shot alarm or reminder pinned to a wall-clock time
// in a zone), Draft (a validated add request), FireEvent (what a firing
// emits) and ValidationError. Clone helpers avoid leaking internal
// references out of the registry.
package alarm
