package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDefaultCatalog_Valid ensures every built-in zone resolves.
func TestDefaultCatalog_Valid(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	require.NoError(t, catalog.Validate(NewResolver()))
	require.Len(t, catalog, 6)
	require.Equal(t, Entry{Label: "Tokyo", Zone: "Asia/Tokyo"}, catalog[4])
}

// TestCatalog_Validate rejects empty catalogs and unknown zones.
func TestCatalog_Validate(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	require.ErrorIs(t, Catalog{}.Validate(r), errEmptyCatalog)

	err := Catalog{{Label: "Nowhere", Zone: "Nowhere/Land"}}.Validate(r)
	require.Error(t, err)
	require.True(t, IsUnknownZone(err))
}

// TestCatalog_Read verifies all readings come from the same instant.
func TestCatalog_Read(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	catalog := Catalog{
		{Label: "UTC", Zone: "UTC"},
		{Label: "Broken", Zone: "Broken/Zone"},
		{Label: "Tokyo", Zone: "Asia/Tokyo"},
	}

	readings := catalog.Read(NewResolver(), at)
	require.Len(t, readings, 2)
	require.Equal(t, "UTC", readings[0].Label)
	require.Equal(t, 12, readings[0].Hour)
	require.Equal(t, "Tokyo", readings[1].Label)
	require.Equal(t, 21, readings[1].Hour)

	for _, reading := range readings {
		require.True(t, reading.Time().Equal(at))
	}
}
