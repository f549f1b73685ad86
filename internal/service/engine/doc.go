// Package engine is the time-tracking and alarm-scheduling core.
//
// An Engine owns one alarm registry and one clock. Every tick it takes a
// single authoritative "now", fires each pending alarm whose zone reads the
// :00 second of its target minute, and hands a snapshot to subscribers. A
// tick whose :00 second is missed (host sleep, delayed timer) skips that
// occurrence; there is no catch-up window.
package engine
