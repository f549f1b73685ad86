package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/timekeeper/internal/service/tracker"
)

var (
	// metricsAddress overrides the metrics listen address from settings.
	metricsAddress string

	// runCmd starts the clock and the alarm engine.
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the clock and fire configured alarms until interrupted.",
		Long: `Starts the engine with the alarms from the settings file.

Every fire message is printed and logged. World clocks are logged at debug
level on every tick. When a metrics address is set, Prometheus metrics are
served on /metrics and a liveness probe on /health.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := trackerOptions(cmd)
			options.MetricsAddress = metricsAddress

			return tracker.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	runCmd.Flags().StringVarP(&metricsAddress, "metrics-addr", "m", "", "listen address for Prometheus metrics (e.g. :9090)")
	rootCmd.AddCommand(runCmd)
}
