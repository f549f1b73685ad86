// Package clock provides the time source the engine ticks from.
//
// Source abstracts the host clock and its periodic timer so the engine can be
// driven by the wall clock in production and by a Manual clock in tests.
package clock
