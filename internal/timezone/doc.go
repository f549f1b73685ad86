// Package timezone resolves IANA zone identifiers to wall-clock fields.
//
// The Resolver turns an instant into the year/month/day/hour/minute/second
// and weekday seen in a given zone, applying that zone's offset and DST
// rules. Catalog holds the fixed list of selectable zones shown as world
// clocks.
package timezone
