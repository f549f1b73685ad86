// Package tracker wires settings, logging, metrics and the engine into the
// processes started by the timekeeper commands.
//
// Run drives the long-lived tracker. Convert, Zones and Export are one-shot
// helpers sharing the same settings and engine setup.
package tracker
