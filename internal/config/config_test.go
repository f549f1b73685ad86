package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// TestValidate checks defaults and format validations for settings.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	// Defaults are filled in.
	settings := new(Config)
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultTickInterval, settings.TickInterval)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)
	require.Equal(t, timezone.DefaultCatalog(), settings.Zones)

	// Bad level.
	settings = &Config{LogLevel: "loud"}
	require.ErrorIs(t, Validate(settings), errUnknownLogLevel)

	// Negative interval.
	settings = &Config{TickInterval: -time.Second}
	require.ErrorIs(t, Validate(settings), errNegativeInterval)

	// Bad metrics address.
	settings = &Config{MetricsAddress: "no-port"}
	require.Error(t, Validate(settings))

	// Bad alarm time.
	settings = &Config{Alarms: []AlarmSpec{{Time: "07:00", Zone: "UTC"}, {Time: "25:00", Zone: "UTC"}}}
	err := Validate(settings)
	require.Error(t, err)
	require.True(t, alarm.IsValidation(err))
	require.Contains(t, err.Error(), "alarm 2:")

	// Okay with metrics and alarms.
	settings = &Config{
		MetricsAddress: "127.0.0.1:9090",
		Alarms:         []AlarmSpec{{Label: "Standup", Time: "14:30", Zone: "UTC"}},
	}
	require.NoError(t, Validate(settings))
}

// TestAlarmSpecDraft verifies conversion of declared alarms.
func TestAlarmSpecDraft(t *testing.T) {
	t.Parallel()

	entry := AlarmSpec{Label: "Tea", Time: "16:05", Zone: "Europe/London", Reminder: true}

	draft, err := entry.Draft()
	require.NoError(t, err)
	require.Equal(t, &alarm.Draft{
		Label:      "Tea",
		Hour:       16,
		Minute:     5,
		Zone:       "Europe/London",
		IsReminder: true,
	}, draft)

	_, err = (&AlarmSpec{Time: "16:05"}).Draft()
	require.True(t, alarm.IsValidation(err))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "timekeeper.yaml")

	settings := &Config{
		LogLevel:     "debug",
		TickInterval: 500 * time.Millisecond,
		Zones: timezone.Catalog{
			{Label: "UTC", Zone: "UTC"},
			{Label: "Tokyo", Zone: "Asia/Tokyo"},
		},
		Alarms: []AlarmSpec{{Label: "Standup", Time: "14:30", Zone: "UTC"}},
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadOrDefault covers missing implicit and explicit files.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(missing, true)
	require.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("tick_interval: [oops"), DefaultFilePermissions))

	_, err = LoadOrDefault(broken, false)
	require.Error(t, err)
}
