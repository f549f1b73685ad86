package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/logger"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// AlarmSpec is an alarm declared in the settings file.
type AlarmSpec struct {
	// Label is the optional alarm label.
	Label string `yaml:"label,omitempty"`
	// Time is the target wall-clock time as HH:mm.
	Time string `yaml:"time"`
	// Zone is the IANA identifier the time is read in.
	Zone string `yaml:"zone"`
	// Reminder marks the entry as a reminder.
	Reminder bool `yaml:"reminder,omitempty"`
}

// Draft converts the entry into an alarm draft.
func (s *AlarmSpec) Draft() (*alarm.Draft, error) {
	hour, minute, err := alarm.ParseHourMinute(s.Time)
	if err != nil {
		return nil, err
	}

	draft := &alarm.Draft{
		Label:      s.Label,
		Hour:       hour,
		Minute:     minute,
		Zone:       s.Zone,
		IsReminder: s.Reminder,
	}

	if err = draft.Validate(); err != nil {
		return nil, err
	}

	return draft, nil
}

// Config holds the settings of the timekeeper binary.
type Config struct {
	// LogLevel is the minimum level of emitted log entries.
	LogLevel string `yaml:"log_level"`
	// TickInterval is the clock period the engine evaluates alarms on.
	TickInterval time.Duration `yaml:"tick_interval"`
	// MetricsAddress is the optional listen address for /metrics.
	MetricsAddress string `yaml:"metrics_addr,omitempty"`
	// Zones is the world clock catalog and the list of selectable zones.
	Zones timezone.Catalog `yaml:"zones"`
	// Alarms are registered when the engine starts.
	Alarms []AlarmSpec `yaml:"alarms,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "timekeeper.yaml"

	// DefaultTickInterval refreshes the clock once per second.
	DefaultTickInterval = time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeInterval is returned for a negative tick interval.
	errNegativeInterval = errors.New("tick interval must not be negative")
	// errUnknownLogLevel is returned for an unsupported log level.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns settings with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist and the path was not given explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}

	if !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return nil, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults.
// Zone resolution is left to the engine, which owns the resolver.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	if settings.TickInterval < 0 {
		return errNegativeInterval
	}

	// Set default interval if not specified
	if settings.TickInterval == 0 {
		settings.TickInterval = DefaultTickInterval
	}

	if settings.MetricsAddress != "" {
		if _, _, err := net.SplitHostPort(settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics address: %w", err)
		}
	}

	// Set default catalog if not specified
	if len(settings.Zones) == 0 {
		settings.Zones = timezone.DefaultCatalog()
	}

	for i := range settings.Alarms {
		if _, err := settings.Alarms[i].Draft(); err != nil {
			return fmt.Errorf("alarm %d: %w", i+1, err)
		}
	}

	return nil
}
