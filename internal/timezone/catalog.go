package timezone

import (
	"errors"
	"fmt"
	"time"
)

// Entry is one selectable zone.
type Entry struct {
	// Label is the display name, e.g. "Tokyo".
	Label string `yaml:"label"`
	// Zone is the IANA identifier, e.g. "Asia/Tokyo".
	Zone string `yaml:"zone"`
}

// Catalog is the ordered list of selectable zones.
type Catalog []Entry

// Reading is a world clock card: a catalog entry read at one instant.
type Reading struct {
	Entry
	WallClock
}

var errEmptyCatalog = errors.New("zone catalog is empty")

// DefaultCatalog returns the built-in world clock zones.
func DefaultCatalog() Catalog {
	return Catalog{
		{Label: "Local", Zone: LocalName()},
		{Label: "UTC", Zone: "UTC"},
		{Label: "New York", Zone: "America/New_York"},
		{Label: "London", Zone: "Europe/London"},
		{Label: "Tokyo", Zone: "Asia/Tokyo"},
		{Label: "Sydney", Zone: "Australia/Sydney"},
	}
}

// Validate checks that the catalog is non-empty and every zone resolves.
func (c Catalog) Validate(resolver Resolver) error {
	if len(c) == 0 {
		return errEmptyCatalog
	}

	for i, entry := range c {
		if _, err := resolver.Location(entry.Zone); err != nil {
			return fmt.Errorf("zone catalog entry %d (%s): %w", i, entry.Label, err)
		}
	}

	return nil
}

// Read resolves every entry at the same instant. Entries that fail to
// resolve are left out.
func (c Catalog) Read(resolver Resolver, at time.Time) []Reading {
	readings := make([]Reading, 0, len(c))

	for _, entry := range c {
		wall, err := resolver.Resolve(entry.Zone, at)
		if err != nil {
			continue
		}

		readings = append(readings, Reading{
			Entry:     entry,
			WallClock: wall,
		})
	}

	return readings
}
