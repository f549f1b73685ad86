// Package alarm implements the alarm registry.
//
// MemoryRegistry owns the set of alarms in insertion order, validates add
// requests against the timezone resolver and is the only place the triggered
// flag is flipped. Alarms live for the lifetime of the process.
package alarm
