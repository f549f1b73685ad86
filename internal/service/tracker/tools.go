package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/timekeeper/internal/export/calendar"
	"github.com/oshokin/timekeeper/internal/logger"
	"github.com/oshokin/timekeeper/internal/service/converter"
	"github.com/oshokin/timekeeper/internal/timezone"
)

// zoneLineFormat lays out one world clock line: label, zone, time, date.
const zoneLineFormat = "%-12s %-22s %s  %s\n"

// Convert converts value ("HH:mm") from fromZone to toZone and writes the
// result line to the output.
func Convert(ctx context.Context, opts *Options, value, fromZone, toZone string) (*converter.Result, error) {
	ctx = logger.WithName(ctx, "convert")

	settings, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	// Configured alarms do not matter for a conversion.
	settings.Alarms = nil

	eng, err := newEngine(ctx, settings, opts, nil)
	if err != nil {
		return nil, err
	}

	result, err := eng.ConvertText(ctx, fromZone, toZone, value)
	if err != nil {
		return nil, err
	}

	if err = writeLine(opts.Output, result.Text()); err != nil {
		return nil, err
	}

	return result, nil
}

// Zones writes every catalog zone with its current wall-clock time.
func Zones(ctx context.Context, opts *Options) ([]timezone.Reading, error) {
	ctx = logger.WithName(ctx, "zones")

	settings, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	settings.Alarms = nil

	eng, err := newEngine(ctx, settings, opts, nil)
	if err != nil {
		return nil, err
	}

	readings := eng.Snapshot().WorldClocks

	if opts.Output != nil {
		for _, reading := range readings {
			_, err = fmt.Fprintf(opts.Output, zoneLineFormat,
				reading.Label, reading.Zone, reading.Clock(), reading.LongDate())
			if err != nil {
				return nil, fmt.Errorf("write zones: %w", err)
			}
		}
	}

	return readings, nil
}

// Export writes the configured alarms as an iCalendar feed.
func Export(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "export")

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	eng, err := newEngine(ctx, settings, opts, nil)
	if err != nil {
		return err
	}

	if opts.Output == nil {
		return nil
	}

	snapshot := eng.Snapshot()

	if err = calendar.NewExporter(opts.Resolver).Encode(opts.Output, snapshot.Alarms, snapshot.Now); err != nil {
		return fmt.Errorf("export alarms: %w", err)
	}

	logger.DebugKV(ctx, "Alarms exported", "alarms", len(snapshot.Alarms))

	return nil
}

// writeLine writes s and a newline to w when w is set.
func writeLine(w io.Writer, s string) error {
	if w == nil {
		return nil
	}

	if _, err := fmt.Fprintln(w, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
