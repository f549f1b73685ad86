package timezone

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	// Embedded zone database for hosts without zoneinfo files.
	_ "time/tzdata"
)

// LocalZone is the identifier of the host zone.
const LocalZone = "Local"

// UnknownZoneError is returned when a zone identifier cannot be resolved.
type UnknownZoneError struct {
	// Zone is the identifier that failed to resolve.
	Zone string
	// Err is the underlying loader error, if any.
	Err error
}

// Error implements the error interface.
func (e *UnknownZoneError) Error() string {
	if e.Zone == "" {
		return "unknown time zone: empty identifier"
	}

	return fmt.Sprintf("unknown time zone %q", e.Zone)
}

// Unwrap returns the loader error.
func (e *UnknownZoneError) Unwrap() error {
	return e.Err
}

// IsUnknownZone reports whether err carries an UnknownZoneError.
func IsUnknownZone(err error) bool {
	var zoneErr *UnknownZoneError

	return errors.As(err, &zoneErr)
}

// Resolver maps a zone identifier and an instant to wall-clock fields.
type Resolver interface {
	// Location returns the location for zone or an UnknownZoneError.
	Location(zone string) (*time.Location, error)
	// Resolve returns the wall-clock fields of at in zone.
	Resolve(zone string, at time.Time) (WallClock, error)
}

// LocationResolver resolves zones with time.LoadLocation and caches them.
type LocationResolver struct {
	// mu protects locations.
	mu sync.RWMutex
	// locations caches loaded zones by identifier.
	locations map[string]*time.Location
}

// NewResolver returns a resolver backed by the IANA database.
func NewResolver() *LocationResolver {
	return &LocationResolver{
		locations: map[string]*time.Location{
			"UTC":     time.UTC,
			LocalZone: time.Local,
		},
	}
}

// Location returns the cached location for zone, loading it on first use.
func (r *LocationResolver) Location(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return nil, &UnknownZoneError{Zone: zone}
	}

	r.mu.RLock()
	loc, ok := r.locations[zone]
	r.mu.RUnlock()

	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, &UnknownZoneError{Zone: zone, Err: err}
	}

	r.mu.Lock()
	r.locations[zone] = loc
	r.mu.Unlock()

	return loc, nil
}

// Resolve returns the wall-clock fields of at in zone.
func (r *LocationResolver) Resolve(zone string, at time.Time) (WallClock, error) {
	loc, err := r.Location(zone)
	if err != nil {
		return WallClock{}, err
	}

	return FromTime(at.In(loc)), nil
}

// LocalName returns the IANA name of the host zone, falling back to LocalZone
// when the runtime only knows it as "Local".
func LocalName() string {
	if name := time.Local.String(); name != "" && name != LocalZone {
		return name
	}

	return LocalZone
}
