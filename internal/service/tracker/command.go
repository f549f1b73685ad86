package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/timekeeper/internal/clock"
	"github.com/oshokin/timekeeper/internal/config"
	"github.com/oshokin/timekeeper/internal/domain/alarm"
	"github.com/oshokin/timekeeper/internal/logger"
	"github.com/oshokin/timekeeper/internal/metrics"
	"github.com/oshokin/timekeeper/internal/service/engine"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// Options controls the timekeeper processes.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ConfigExplicit reports whether ConfigPath was given by the user.
	// A missing implicit file falls back to defaults.
	ConfigExplicit bool
	// MetricsAddress overrides the metrics listen address from settings.
	MetricsAddress string
	// Output receives fire messages and command results. Nil discards them.
	Output io.Writer
	// Clock overrides the system clock.
	Clock clock.Source
	// Resolver overrides the IANA resolver. The engine and the exporter
	// share it; a nil value is filled in when the engine is built.
	Resolver timezone.Resolver
}

// Run starts the engine with the configured alarms and blocks until ctx is
// canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "tracker")
	ctx = logger.WithKV(ctx, "config", opts.ConfigPath)

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	instruments := metrics.New()

	eng, err := newEngine(ctx, settings, opts, instruments)
	if err != nil {
		return err
	}

	unsubscribe := eng.Subscribe(func(snapshot engine.Snapshot) {
		logWorldClocks(ctx, snapshot)
	})
	defer unsubscribe()

	metricsAddress := settings.MetricsAddress
	if opts.MetricsAddress != "" {
		metricsAddress = opts.MetricsAddress
	}

	var server *metricsServer

	if metricsAddress != "" {
		server, err = startMetricsServer(ctx, metricsAddress, instruments)
		if err != nil {
			return err
		}
	}

	if err = eng.Start(ctx); err != nil {
		if server != nil {
			server.shutdown(ctx)
		}

		return fmt.Errorf("start engine: %w", err)
	}

	logger.InfoKV(ctx, "Timekeeper started",
		"alarms", len(settings.Alarms),
		"zones", len(settings.Zones),
		"metrics_address", metricsAddress)

	<-ctx.Done()

	eng.Stop()

	if server != nil {
		server.shutdown(ctx)
	}

	logger.Info(ctx, "Timekeeper stopped")

	return nil
}

// loadSettings reads the settings and applies the configured log level.
func loadSettings(opts *Options) (*config.Config, error) {
	settings, err := config.LoadOrDefault(opts.ConfigPath, opts.ConfigExplicit)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// Validate has already checked the level.
	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	return settings, nil
}

// newEngine builds the engine and registers the configured alarms.
func newEngine(
	ctx context.Context,
	settings *config.Config,
	opts *Options,
	instruments *metrics.Metrics,
) (*engine.Engine, error) {
	src := opts.Clock
	if src == nil {
		src = clock.NewSystem()
	}

	if opts.Resolver == nil {
		opts.Resolver = timezone.NewResolver()
	}

	output := opts.Output

	eng, err := engine.New(&engine.Options{
		Clock:        src,
		Resolver:     opts.Resolver,
		Catalog:      settings.Zones,
		TickInterval: settings.TickInterval,
		Metrics:      instruments,
		OnFire: func(_ context.Context, event alarm.FireEvent) {
			if output != nil {
				_, _ = fmt.Fprintln(output, event.Message())
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	for i := range settings.Alarms {
		entry := &settings.Alarms[i]

		draft, err := entry.Draft()
		if err != nil {
			return nil, fmt.Errorf("alarm %d: %w", i+1, err)
		}

		if _, err = eng.AddAlarm(ctx, draft); err != nil {
			return nil, fmt.Errorf("alarm %d: %w", i+1, err)
		}
	}

	return eng, nil
}

// logWorldClocks writes the world clock readings at debug level.
func logWorldClocks(ctx context.Context, snapshot engine.Snapshot) {
	for _, reading := range snapshot.WorldClocks {
		logger.DebugKV(ctx, "World clock",
			"label", reading.Label,
			"zone", reading.Zone,
			"time", reading.Clock(),
			"date", reading.LongDate())
	}
}
